package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/subssa/internal/media"
	"github.com/mgpai22/subssa/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file to SSA v4",
	Long: `Convert an ASS, SSA, SRT or WebVTT file to a SubStation Alpha v4 script.

Styles, attachments and comments are carried over from ASS input. Fields the
v4 format cannot express are dropped: commas in style, actor and effect names
become semicolons, and raw line breaks in dialogue are removed.

SRT and WebVTT cues are placed on a single Default style using the font from
the configuration file.

Examples:
  subssa convert episode.ass
  subssa convert episode.srt -o legacy.ssa -e windows-1252
  subssa convert episode.ass --attach fonts/Title.ttf --line-ending crlf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringArray("attach", nil, "Font or image file to embed (repeatable)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", inputPath)
	}
	if !media.IsSubtitleFile(inputPath) {
		return fmt.Errorf("unsupported file type: %s (expected .ass, .ssa, .srt or .vtt)", filepath.Ext(inputPath))
	}

	attachments, _ := cmd.Flags().GetStringArray("attach")

	settings, err := readExportSettings(cmd, inputPath)
	if err != nil {
		return err
	}

	logger.Infow("Reading subtitles",
		"input", inputPath,
	)

	doc, err := subtitle.OpenWithOptions(inputPath, subtitle.ImportOptions{
		FontName: cfg.DefaultFont,
		FontSize: cfg.DefaultFontSize,
	})
	if err != nil {
		return fmt.Errorf("failed to read subtitles: %w", err)
	}

	if err := attachFiles(doc, attachments); err != nil {
		return err
	}

	return writeSSA(doc, settings)
}
