package cli

import (
	"fmt"

	"github.com/mgpai22/subssa/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", cfg.Generator, version.Current().LongVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
