package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const (
	ffmpegPathEnv  = "SUBSSA_FFMPEG_PATH"
	ffprobePathEnv = "SUBSSA_FFPROBE_PATH"
)

var ErrFFmpegNotFound = errors.New("media: ffmpeg not found")

// FFmpegPath resolves ffmpeg from SUBSSA_FFMPEG_PATH, then PATH.
func FFmpegPath() (string, error) {
	return resolveBinary("ffmpeg", ffmpegPathEnv)
}

// FFprobePath resolves ffprobe from SUBSSA_FFPROBE_PATH, then PATH.
func FFprobePath() (string, error) {
	return resolveBinary("ffprobe", ffprobePathEnv)
}

func resolveBinary(name, envVar string) (string, error) {
	if p := os.Getenv(envVar); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("%w: %s=%s: %v", ErrFFmpegNotFound, envVar, p, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s=%s is a directory", ErrFFmpegNotFound, envVar, p)
		}
		return p, nil
	}

	found, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf(
			"%w: install %s or set %s",
			ErrFFmpegNotFound,
			name,
			envVar,
		)
	}
	return found, nil
}
