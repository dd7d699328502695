// Package media pulls subtitle tracks out of video containers with ffmpeg.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// subtitle stream inside a container
type SubtitleStream struct {
	// position among subtitle streams, as used by -map 0:s:N
	Index int
	// absolute stream index in the container
	StreamIndex int
	Codec       string
	Language    string
	Title       string
}

type ffprobeOutput struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecName string `json:"codec_name"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
}

// ListSubtitleStreams lists the subtitle streams of a container.
func ListSubtitleStreams(ctx context.Context, videoPath string) ([]SubtitleStream, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeStreams(out.Bytes())
}

func parseProbeStreams(data []byte) ([]SubtitleStream, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	streams := make([]SubtitleStream, 0, len(probe.Streams))
	for i, s := range probe.Streams {
		streams = append(streams, SubtitleStream{
			Index:       i,
			StreamIndex: s.Index,
			Codec:       s.CodecName,
			Language:    s.Tags.Language,
			Title:       s.Tags.Title,
		})
	}
	return streams, nil
}

// ExtractSubtitles converts subtitle stream number stream of videoPath to
// an ASS script at outputPath.
func ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	stream int,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if stream < 0 {
		return fmt.Errorf("invalid subtitle stream %d", stream)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", stream),
		"c:s": "ass",
		"f":   "ass",
	}

	var stderr bytes.Buffer
	// the context kills ffmpeg if it is cancelled mid-run
	input := ffmpeg.Input(videoPath)
	err = ffmpeg.OutputContext(ctx, []*ffmpeg.Stream{input}, outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		WithErrorOutput(&stderr).
		Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w%s", err, stderrTail(stderr.String()))
	}

	return nil
}

// last line ffmpeg printed, which usually names the failure
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	return ": " + strings.TrimSpace(s)
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".ts":   true,
		".m2ts": true,
		".ogm":  true,
	}
	return videoExts[ext]
}

// checks if the file is a subtitle script based on extension
func IsSubtitleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ass", ".ssa", ".srt", ".vtt":
		return true
	default:
		return false
	}
}
