package reporter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/yaklabco/kumark/internal/ui/pretty"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// JSONSymbol is one symbol of a JSON stream dump.
type JSONSymbol struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

// WriteSymbols dumps a symbol stream to w in the given format. Color
// follows the reporter's color modes.
func WriteSymbols(w io.Writer, symbols []symbol.Symbol, format Format, color string) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	colorEnabled := pretty.IsColorEnabled(color, w)
	styles := pretty.NewStyles(colorEnabled)

	switch format {
	case FormatJSON:
		out := make([]JSONSymbol, 0, len(symbols))
		for _, sym := range symbols {
			out = append(out, JSONSymbol{
				Kind:   sym.Kind.String(),
				Text:   sym.Text(),
				Line:   sym.Pos.Line,
				Column: sym.Pos.Column,
				Offset: sym.Pos.Offset,
			})
		}
		return encodeJSON(bw, out, false)

	case FormatTable:
		formatter := pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(w))
		fmt.Fprint(bw, formatter.FormatSymbolTable(symbols))
		return nil

	case FormatText, "":
		for _, sym := range symbols {
			fmt.Fprint(bw, styles.FormatSymbol(sym))
		}
		return nil

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
