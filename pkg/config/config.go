// Package config defines core configuration types for kumark.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "slices"

// Flavor specifies the Markdown flavor goldmark uses for conformance checks.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the root configuration structure for kumark.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// StrictSpans verifies every element's span against its raw text.
	StrictSpans bool `yaml:"strict_spans"`

	// Conformance compares each document with the goldmark outline.
	Conformance bool `yaml:"conformance"`

	// Extensions are the file extensions, with leading dot, treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// FollowSymlinks traverses symlinked directories during discovery.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`

	// LogLevel is a charmbracelet/log level name.
	LogLevel string `yaml:"log_level"`

	// Jobs specifies the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs"`
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".kmd"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Color:      ColorAuto,
		LogLevel:   "warn",
		Jobs:       0,
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	return &clone
}
