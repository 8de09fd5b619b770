package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/kumark/pkg/fsutil"
	"github.com/yaklabco/kumark/pkg/reporter"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

func newSymbolsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "symbols [file|-]",
		Short: "Dump the symbol stream of a document",
		Long: `Print the symbols the stream produces for a document: one per
character, plus a line head at the start of every line, each with the
position reached after it was consumed (line:column@offset, zero-based).

Reads standard input when no file or "-" is given.

Examples:
  kumark symbols README.md
  echo '# hi' | kumark symbols
  kumark symbols --format json notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd, args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, table, json")

	return cmd
}

func runSymbols(cmd *cobra.Command, args []string, formatStr string) error {
	ctx, logger := commandContext(cmd)

	format, err := reporter.ParseFormat(formatStr)
	if err != nil {
		return errors.Join(errUsage, err)
	}

	var content []byte
	if len(args) == 0 || args[0] == stdinArg {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if err := fsutil.CheckText(content); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, _, err = fsutil.ReadFile(ctx, args[0])
		if err != nil {
			return err
		}
	}

	var symbols []symbol.Symbol
	for sym := range symbol.NewStream(string(content)).All() {
		symbols = append(symbols, sym)
	}
	logger.Debug("stream read", "symbols", len(symbols))

	color, _ := cmd.Flags().GetString(flagColor)
	if err := reporter.WriteSymbols(cmd.OutOrStdout(), symbols, format, color); err != nil {
		return fmt.Errorf("write symbols: %w", err)
	}
	return nil
}
