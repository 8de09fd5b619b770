package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumark/internal/configloader"
)

func newConfigCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration kumark resolves for the current directory,
after merging system, user, project and explicit config files with
KUMARK_* environment variables. The header lists the files that were read.

Examples:
  kumark config                   # Resolved settings as YAML
  kumark config --env             # Supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showEnv {
				return printEnvVars(cmd)
			}
			return runConfig(cmd)
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command) error {
	ctx, _ := commandContext(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	var header strings.Builder
	header.WriteString("# Resolved kumark configuration\n")
	if len(result.LoadedFrom) == 0 {
		header.WriteString("# Sources: defaults only\n")
	}
	for _, path := range result.LoadedFrom {
		fmt.Fprintf(&header, "# Source: %s\n", path)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(&header, "# Warning: %s\n", warning)
	}

	out, err := result.Config.ToYAMLWithHeader(header.String())
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func printEnvVars(cmd *cobra.Command) error {
	vars := configloader.ListEnvVars()

	width := 0
	for _, v := range vars {
		width = max(width, len(v[0]))
	}

	out := cmd.OutOrStdout()
	for _, v := range vars {
		if _, err := fmt.Fprintf(out, "%-*s  %s\n", width, v[0], v[1]); err != nil {
			return fmt.Errorf("write env vars: %w", err)
		}
	}
	return nil
}
