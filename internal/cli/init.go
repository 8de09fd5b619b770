package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumark/internal/configloader"
	"github.com/yaklabco/kumark/internal/logging"
	"github.com/yaklabco/kumark/pkg/config"
	"github.com/yaklabco/kumark/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	commented bool
	format    string
	output    string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new kumark configuration file",
		Long: `Create a new .kumark.yml configuration file in the current directory
holding the default settings, each documented with a comment.

Examples:
  kumark init                        Create .kumark.yml
  kumark init --commented            Document the defaults without pinning them
  kumark init --format json          Create .kumark.json instead
  kumark init --output custom.yml    Write to a custom file path
  kumark init --force                Replace an existing file, keeping a backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.commented, "commented", false, "write every setting commented out")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .kumark.yml or .kumark.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx, _ := commandContext(cmd)
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != config.TemplateYAML && flags.format != config.TemplateJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", errUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigName
		if flags.format == config.TemplateJSON {
			outputPath = configloader.ProjectConfigJSONName
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format:    flags.format,
		Commented: flags.commented,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if !flags.force {
		err := fsutil.WriteNew(ctx, absPath, content, fsutil.DefaultFileMode)
		if errors.Is(err, fsutil.ErrExists) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		if err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	} else {
		backedUp, err := fsutil.CreateBackup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing file: %w", err)
		}
		if backedUp {
			logger.Warn("overwriting existing file",
				logging.FieldPath, outputPath,
				"backup", fsutil.BackupPath(outputPath))
		}
		if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'kumark config' to see the resolved settings")

	return nil
}
