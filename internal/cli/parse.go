package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/kumark/internal/configloader"
	"github.com/yaklabco/kumark/internal/logging"
	"github.com/yaklabco/kumark/pkg/config"
	"github.com/yaklabco/kumark/pkg/reporter"
	"github.com/yaklabco/kumark/pkg/runner"
)

// errUsage marks invalid flag values.
var errUsage = errors.New("invalid usage")

// runFlags are the flags shared by parse and check.
type runFlags struct {
	format         string
	flavor         string
	ignore         []string
	extensions     []string
	jobs           int
	strictSpans    bool
	conformance    bool
	followSymlinks bool
	elements       bool
	stats          bool
	compact        bool
}

func newParseCommand() *cobra.Command {
	flags := &runFlags{elements: true}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files and list their elements",
		Long: `Parse Markdown files with the reference grammar and list the elements
found in each, with their spans and inline children.

By default, parses all .md, .markdown and .kmd files in the current
directory and subdirectories.

Examples:
  kumark parse                     # Parse the current directory
  kumark parse README.md           # Parse a single file
  kumark parse --format json docs  # Element trees as JSON
  kumark parse --strict-spans      # Fail on any span inconsistency`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, flags, false)
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.conformance, "conformance", false, "also compare each file with the goldmark outline")
	cmd.Flags().BoolVar(&flags.elements, "elements", true, "list every parsed element")

	return cmd
}

func newCheckCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check the reference grammar against goldmark",
		Long: `Parse Markdown files with the reference grammar and compare the
block structure with goldmark's outline of the same files. Exits with
status 1 when any file has mismatches.

Examples:
  kumark check                     # Check the current directory
  kumark check --flavor gfm docs   # Compare against GitHub Flavored Markdown
  kumark check --format table      # Mismatches as a table`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, flags, true)
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.elements, "elements", false, "also list every parsed element")

	return cmd
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, table, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "goldmark flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to discover (default .md,.markdown,.kmd)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strictSpans, "strict-spans", false, "verify every element span against its raw text")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print full statistics instead of a one-line summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}

// cliConfig builds the configuration layer holding only the flags the user
// set, so unset flags never override files or the environment.
func cliConfig(cmd *cobra.Command, flags *runFlags, check bool) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed(flagColor) {
		cfg.Color, _ = cmd.Flags().GetString(flagColor)
	}
	cfg.StrictSpans = flags.strictSpans
	cfg.FollowSymlinks = flags.followSymlinks
	cfg.Conformance = check || flags.conformance

	return cfg
}

// loadConfig resolves the configuration for a command and applies its log
// level, unless --debug already raised it.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cli *config.Config) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	if debug, _ := cmd.Flags().GetBool(flagDebug); !debug && loadResult.Config.LogLevel != "" {
		logging.SetLevel(loadResult.Config.LogLevel)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

func commandContext(cmd *cobra.Command) (context.Context, *log.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	return logging.WithLogger(ctx, logger), logger
}

func runFiles(cmd *cobra.Command, args []string, flags *runFlags, check bool) error {
	ctx, logger := commandContext(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliConfig(cmd, flags, check))
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(errUsage, err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldConformance, cfg.Conformance,
	)

	result, err := runner.New(logger).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldElements, result.Stats.ElementsTotal,
		logging.FieldMismatches, result.Stats.MismatchesTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       cfg.Color,
		Elements:    flags.elements,
		ShowSummary: true,
		ShowStats:   flags.stats,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitParseErrors:
		return ErrParseFailed
	case ExitMismatches:
		return ErrMismatchesFound
	default:
		return nil
	}
}
