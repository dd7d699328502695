package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/subssa/internal/media"
	"github.com/mgpai22/subssa/internal/subtitle"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract a subtitle track from a video file as SSA v4",
	Long: `Extract a subtitle track from a video container and save it as a
SubStation Alpha v4 script. Requires ffmpeg and ffprobe on PATH, or set
SUBSSA_FFMPEG_PATH and SUBSSA_FFPROBE_PATH.

Only text subtitle tracks (ASS, SSA, SubRip, WebVTT, mov_text) can be
extracted; bitmap tracks such as PGS or VobSub are rejected by ffmpeg.

Examples:
  subssa extract movie.mkv
  subssa extract movie.mkv --stream 1 -o movie.jpn.ssa
  subssa extract movie.mkv --list`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream number (0 = first subtitle track)")
	extractCmd.Flags().
		Bool("list", false, "List subtitle streams and exit")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", videoPath)
	}
	if !media.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported file type: %s (expected a video file)", filepath.Ext(videoPath))
	}

	stream, _ := cmd.Flags().GetInt("stream")
	list, _ := cmd.Flags().GetBool("list")

	if list {
		streams, err := media.ListSubtitleStreams(ctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to list subtitle streams: %w", err)
		}
		if len(streams) == 0 {
			fmt.Println("No subtitle streams found")
			return nil
		}
		for _, s := range streams {
			fmt.Printf("%d\t%s\t%s\t%s\n", s.Index, s.Codec, s.Language, s.Title)
		}
		return nil
	}

	settings, err := readExportSettings(cmd, videoPath)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "subssa-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Infow("Extracting subtitle track",
		"video", videoPath,
		"stream", stream,
	)

	assPath := filepath.Join(tempDir, "track.ass")
	if err := media.ExtractSubtitles(ctx, videoPath, assPath, stream); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	doc, err := subtitle.Open(assPath)
	if err != nil {
		return fmt.Errorf("failed to read extracted track: %w", err)
	}

	return writeSSA(doc, settings)
}
