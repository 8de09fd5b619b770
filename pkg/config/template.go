package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string

	// Commented writes every field commented out, so the file documents
	// the defaults without pinning them.
	Commented bool
}

// templateField is one documented entry of the generated template.
type templateField struct {
	key     string
	comment string
	value   any
}

func templateFields(cfg *Config) []templateField {
	return []templateField{
		{"flavor", "Markdown flavor used for conformance checks: commonmark or gfm", string(cfg.Flavor)},
		{"strict_spans", "Verify every element's span against its raw text and fail on a mismatch", cfg.StrictSpans},
		{"conformance", "Compare each document's blocks with the goldmark outline", cfg.Conformance},
		{"extensions", "File extensions treated as Markdown during directory discovery", cfg.Extensions},
		{"ignore", "Glob patterns, relative to the working directory, for files to skip", cfg.Ignore},
		{"follow_symlinks", "Traverse symlinked directories", cfg.FollowSymlinks},
		{"format", "Output format: text, table or json", string(cfg.Format)},
		{"color", "Color output: auto, always or never", cfg.Color},
		{"log_level", "Log level: debug, info, warn or error", cfg.LogLevel},
		{"jobs", "Number of parallel workers (0 = one per CPU)", cfg.Jobs},
	}
}

// GenerateTemplate creates a configuration file template populated with
// the default configuration.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}

	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(cfg, opts.Commented)
	case TemplateJSON:
		return templateToJSON(cfg)
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

func generateYAMLTemplate(cfg *Config, commented bool) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, field := range templateFields(cfg) {
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(field.comment, commentWrapWidth))
		buf.WriteByte('\n')

		value, err := renderValue(field.key, field.value)
		if err != nil {
			return nil, err
		}
		for _, line := range strings.Split(strings.TrimRight(value, "\n"), "\n") {
			if commented {
				buf.WriteString("# ")
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}

// renderValue renders key: value the way ToYAML would.
func renderValue(key string, value any) (string, error) {
	switch typed := value.(type) {
	case []string:
		if len(typed) == 0 {
			return key + ": []", nil
		}
		var b strings.Builder
		b.WriteString(key + ":\n")
		for _, item := range typed {
			fmt.Fprintf(&b, "%s- %q\n", strings.Repeat(" ", YAMLIndent()), item)
		}
		return b.String(), nil
	case string:
		return fmt.Sprintf("%s: %s", key, typed), nil
	case bool, int:
		return fmt.Sprintf("%s: %v", key, typed), nil
	default:
		return "", fmt.Errorf("unsupported template value %T for %s", value, key)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the template fields as an indented JSON object.
// JSON has no comments, so only the values are kept.
func templateToJSON(cfg *Config) ([]byte, error) {
	obj := make(map[string]any)
	for _, field := range templateFields(cfg) {
		obj[field.key] = field.value
	}

	jsonBytes, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# kumark configuration
# See: https://github.com/yaklabco/kumark`
}
