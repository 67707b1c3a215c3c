// Package cli provides the command-line interface for the archiving bot.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "tgarchive",
	Short: "Telegram to cloud storage archiving bot",
	Long: `tgarchive runs a Telegram bot that archives incoming messages, photos
and files to cloud storage. Destination folders are selected per user
through a topic catalogue; media groups land together in a shared
subfolder.`,
	SilenceUsage: true,
	RunE:         runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"path to the TOML configuration file (default: environment only)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"override the configured log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
