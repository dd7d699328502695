package cli

import (
	"fmt"

	"github.com/mgpai22/subssa/internal/config"
	"github.com/mgpai22/subssa/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subssa",
	Short: "Convert subtitle scripts to SubStation Alpha v4",
	Long: `subssa writes subtitle scripts in the legacy SubStation Alpha v4 (.ssa)
format for players and hardware that predate ASS.

It reads ASS, SSA, SRT and WebVTT files, and can pull subtitle tracks
out of video containers with ffmpeg.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		logger.Debugw("Configuration loaded",
			"generator", cfg.Generator,
			"encoding", cfg.Encoding,
			"line_ending", cfg.LineEnding,
		)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/subssa/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("encoding", "e", "", "Output character encoding (e.g., utf-8, windows-1252, shift_jis)")
	rootCmd.PersistentFlags().
		String("line-ending", "", "Output line ending (lf, crlf)")
}
