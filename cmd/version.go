package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/nr-cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nr %s\n", version.GetVersion())

		if version.GetBuildDate() != "unknown" {
			fmt.Printf("build date: %s\n", version.GetBuildDate())
		}

		if version.GetGitCommit() != "unknown" {
			fmt.Printf("git commit: %s\n", version.GetGitCommit())
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
