package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/kumark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 41 elements, 2 mismatches in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s parsed", stats.FilesParsed, plural(stats.FilesParsed, wordFile)),
		fmt.Sprintf("%d %s", stats.ElementsTotal, plural(stats.ElementsTotal, "element")),
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(
			fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, wordFile))))
	}

	if stats.MismatchesTotal > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s in %d %s",
			stats.MismatchesTotal, plural(stats.MismatchesTotal, "mismatch"),
			stats.FilesWithMismatches, plural(stats.FilesWithMismatches, wordFile))))
	}

	line := strings.Join(parts, ", ")
	if stats.FilesErrored == 0 && stats.MismatchesTotal == 0 {
		line = s.Success.Render("OK") + " " + line
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block, with element
// counts by class in name order.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-20s %s\n", label+":", value)
	}

	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files parsed", s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)))
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Elements", s.SummaryValue.Render(strconv.Itoa(stats.ElementsTotal)))

	classes := make([]string, 0, len(stats.ElementsByClass))
	for class := range stats.ElementsByClass {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	for _, class := range classes {
		fmt.Fprintf(&builder, "    %-18s %s\n", class+":", s.Element.Render(strconv.Itoa(stats.ElementsByClass[class])))
	}

	if stats.MismatchesTotal > 0 {
		builder.WriteString("\n")
		row("Mismatches", s.Failure.Render(strconv.Itoa(stats.MismatchesTotal)))
		row("Files with mismatches", s.Failure.Render(strconv.Itoa(stats.FilesWithMismatches)))
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Parse failed"))
	case stats.MismatchesTotal > 0:
		builder.WriteString(s.Failure.Render("Conformance check failed"))
	default:
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
