package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/kumark/pkg/config"
)

// envVarPrefix is the prefix for all kumark environment variables.
const envVarPrefix = "KUMARK_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringField(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolField(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intField(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func sliceField(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR": {"flavor", "Markdown flavor: commonmark or gfm",
		stringField(func(c *config.Config, v string) { c.Flavor = config.Flavor(v) })},
	"STRICT_SPANS": {"strict_spans", "Verify element spans: true or false",
		boolField(func(c *config.Config, v bool) { c.StrictSpans = v })},
	"CONFORMANCE": {"conformance", "Compare with the goldmark outline: true or false",
		boolField(func(c *config.Config, v bool) { c.Conformance = v })},
	"FORMAT": {"format", "Output format: text, table or json",
		stringField(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	"COLOR": {"color", "Color output: auto, always or never",
		stringField(func(c *config.Config, v string) { c.Color = v })},
	"LOG_LEVEL": {"log_level", "Log level: debug, info, warn or error",
		stringField(func(c *config.Config, v string) { c.LogLevel = v })},
	"JOBS": {"jobs", "Number of parallel workers (0 = auto)",
		intField(func(c *config.Config, v int) { c.Jobs = v })},
	"IGNORE": {"ignore", "Comma-separated list of ignore patterns",
		sliceField(func(c *config.Config, v []string) { c.Ignore = v })},
	"EXTENSIONS": {"extensions", "Comma-separated list of Markdown file extensions",
		sliceField(func(c *config.Config, v []string) { c.Extensions = v })},
	"FOLLOW_SYMLINKS": {"follow_symlinks", "Traverse symlinked directories: true or false",
		boolField(func(c *config.Config, v bool) { c.FollowSymlinks = v })},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with KUMARK_ (e.g., KUMARK_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := mapping.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables, sorted, with
// their descriptions.
func ListEnvVars() [][2]string {
	vars := make([][2]string, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, [2]string{envVarPrefix + suffix, mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i][0] < vars[j][0] })
	return vars
}
