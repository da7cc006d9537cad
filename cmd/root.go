// Package cmd implements the CLI commands for chatpipe using Cobra.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "chatpipe",
	Short: "chatpipe — convert legacy AIM chat exports into structured outputs",
	Long: `chatpipe converts AOL Instant Messenger HTML conversation logs into
Markdown (with frontmatter), PDF, JSON, or Embeddings.

Usage:
  chatpipe convert <file-or-directory> [flags]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
