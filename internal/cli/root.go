// Package cli provides the Cobra command structure for kumark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumark/internal/logging"
	"github.com/yaklabco/kumark/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Persistent flag names shared by the subcommands.
const (
	flagDebug  = "debug"
	flagConfig = "config"
	flagColor  = "color"
)

// NewRootCommand creates the root kumark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "kumark",
		Short: "A composable, span-exact Markdown parsing toolkit",
		Long: `kumark parses Markdown with a layered grammar built from small,
resumable parsers. Every element it produces carries the exact source text
and span it was parsed from.

Use it to inspect the symbol stream, list parsed elements, or check the
reference grammar against goldmark's reading of the same documents.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, config.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newSymbolsCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
