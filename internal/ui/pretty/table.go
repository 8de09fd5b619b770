package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/kumark/pkg/conformance"
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/runner"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Column describes one table column.
type Column struct {
	Header string

	// Min is the narrowest the column shrinks to when the table is too wide.
	Min int

	// Shrink marks the column that gives up width first.
	Shrink bool

	// KeepEnd truncates from the left, keeping the end (file names).
	KeepEnd bool
}

// TableRow is one row of cells. Kind, when set, selects the row style.
type TableRow struct {
	Cells []string
	Kind  conformance.Kind
}

// TableFormatter formats rows as a styled, terminal-width table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// Format renders groups of rows under columns. Groups are divided by a
// light separator. Empty input renders nothing.
func (t *TableFormatter) Format(columns []Column, groups [][]TableRow) string {
	if len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(columns, groups)
	total := totalWidth(widths)

	var builder strings.Builder

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	builder.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths, columns)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	hasKinds := false
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			builder.WriteString("\n")
		}
		for _, row := range group {
			content := formatCells(row.Cells, widths, columns)
			if row.Kind != "" {
				hasKinds = true
				content = t.styles.KindStyle(row.Kind).Render(content)
			}
			builder.WriteString(content)
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	if hasKinds {
		builder.WriteString(t.formatLegend())
		builder.WriteString("\n")
	}

	return builder.String()
}

// columnWidths fits each column to its content, then shrinks the Shrink
// columns, in order, until the table fits the terminal.
func (t *TableFormatter) columnWidths(columns []Column, groups [][]TableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(col.Min, lipgloss.Width(col.Header))
	}
	for _, group := range groups {
		for _, row := range group {
			for i, cell := range row.Cells {
				if i < len(widths) {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	for i, col := range columns {
		excess := totalWidth(widths) - t.termWidth
		if excess <= 0 {
			break
		}
		if col.Shrink {
			widths[i] = max(col.Min, widths[i]-excess)
		}
	}

	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

func formatCells(cells []string, widths []int, columns []Column) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if columns[i].KeepEnd {
			cell = truncateFilePath(cell, width)
		} else {
			cell = truncateString(cell, width)
		}
		builder.WriteString(cell)
		if i < len(widths)-1 {
			builder.WriteString(strings.Repeat(" ", max(0, width-lipgloss.Width(cell))+tablePadding))
		}
	}
	return strings.TrimRight(builder.String(), " ")
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	kinds := []conformance.Kind{
		conformance.KindMissing, conformance.KindExtra, conformance.KindClass, conformance.KindExtent,
	}

	samples := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		samples = append(samples, t.styles.FormatKind(kind))
	}

	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Kinds: " + strings.Join(samples, " | "))
	}
	return t.styles.TableLegend.Render(" Legend: " + strings.Join(samples, "  "))
}

// ElementColumns are the columns of FormatElementTable.
func ElementColumns() []Column {
	return []Column{
		{Header: "FILE", Min: 12, Shrink: true, KeepEnd: true},
		{Header: "SPAN", Min: 9},
		{Header: "CLASS", Min: 8},
		{Header: "TEXT", Min: 20, Shrink: true},
	}
}

// FormatElementTable formats every file's top-level elements and their
// inline children, one group per file.
func (t *TableFormatter) FormatElementTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if file.Error != nil || len(file.Elements) == 0 {
			continue
		}

		groups = append(groups, t.elementRows(nil, file.Path, file.Elements, 0))
	}

	return t.Format(ElementColumns(), groups)
}

// elementRows appends a row per element, indenting the class of inline
// children by depth.
func (t *TableFormatter) elementRows(rows []TableRow, path string, elems []element.Element, depth int) []TableRow {
	for _, elem := range elems {
		rows = append(rows, TableRow{Cells: []string{
			path,
			SpanLabel(elem.Data().Span()),
			strings.Repeat("  ", depth) + elem.Class(),
			Preview(elem.Format(), t.termWidth),
		}})
		if parent, ok := elem.(grammar.Parent); ok {
			rows = t.elementRows(rows, path, parent.Inline(), depth+1)
		}
	}
	return rows
}

// MismatchColumns are the columns of FormatMismatchTable.
func MismatchColumns() []Column {
	return []Column{
		{Header: "FILE", Min: 12, Shrink: true, KeepEnd: true},
		{Header: "LINE", Min: 4},
		{Header: "KIND", Min: 7},
		{Header: "WANT", Min: 16, Shrink: true},
		{Header: "GOT", Min: 16, Shrink: true},
	}
}

// FormatMismatchTable formats the conformance mismatches, one group per file.
func (t *TableFormatter) FormatMismatchTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if len(file.Mismatches) == 0 {
			continue
		}

		rows := make([]TableRow, 0, len(file.Mismatches))
		for _, m := range file.Mismatches {
			rows = append(rows, TableRow{
				Cells: []string{file.Path, fmt.Sprint(m.Line + 1), string(m.Kind), m.Want, m.Got},
				Kind:  m.Kind,
			})
		}
		groups = append(groups, rows)
	}

	return t.Format(MismatchColumns(), groups)
}

// SymbolColumns are the columns of FormatSymbolTable.
func SymbolColumns() []Column {
	return []Column{
		{Header: "LINE", Min: 4},
		{Header: "COL", Min: 3},
		{Header: "OFFSET", Min: 6},
		{Header: "KIND", Min: 8},
		{Header: "TEXT", Min: 8},
	}
}

// FormatSymbolTable formats a symbol stream, one group per source line.
func (t *TableFormatter) FormatSymbolTable(symbols []symbol.Symbol) string {
	var groups [][]TableRow
	for _, sym := range symbols {
		if sym.IsLineHead() || len(groups) == 0 {
			groups = append(groups, nil)
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], TableRow{Cells: []string{
			fmt.Sprint(sym.Pos.Line),
			fmt.Sprint(sym.Pos.Column),
			fmt.Sprint(sym.Pos.Offset),
			sym.Kind.String(),
			SymbolLabel(sym),
		}})
	}

	return t.Format(SymbolColumns(), groups)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d %s parsed", stats.FilesParsed, plural(stats.FilesParsed, wordFile)),
		fmt.Sprintf("%d %s", stats.ElementsTotal, plural(stats.ElementsTotal, "element")),
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.MismatchesTotal > 0 {
		parts = append(parts, t.styles.Failure.Render(
			fmt.Sprintf("%d %s", stats.MismatchesTotal, plural(stats.MismatchesTotal, "mismatch"))))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return string(runes[len(runes)-maxLen:])
	}
	return ellipsis + string(runes[len(runes)-maxLen+len(ellipsis):])
}
