// Package cli implements the flowboard-server command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowboard-server",
	Short: "Backend API for the flowboard project workspace",
	Long: `flowboard-server exposes the flowboard REST API: AI chat completion,
user profiles, and project/kanban boards, backed by MongoDB and an
OpenAI-compatible completion provider.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
