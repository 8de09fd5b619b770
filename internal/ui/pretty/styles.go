// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/kumark/pkg/conformance"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Mismatch kinds
	Missing lipgloss.Style
	Extra   lipgloss.Style
	Class   lipgloss.Style
	Extent  lipgloss.Style

	// Element and symbol components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Element  lipgloss.Style
	Message  lipgloss.Style
	LineHead lipgloss.Style
	Error    lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Missing: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Extra:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Class:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Extent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Element:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Message:  lipgloss.NewStyle(),
		LineHead: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Missing:        plain,
		Extra:          plain,
		Class:          plain,
		Extent:         plain,
		FilePath:       plain,
		Location:       plain,
		Element:        plain,
		Message:        plain,
		LineHead:       plain,
		Error:          plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// KindStyle returns the style for a mismatch kind.
func (s *Styles) KindStyle(kind conformance.Kind) lipgloss.Style {
	switch kind {
	case conformance.KindMissing:
		return s.Missing
	case conformance.KindExtra:
		return s.Extra
	case conformance.KindClass:
		return s.Class
	case conformance.KindExtent:
		return s.Extent
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
