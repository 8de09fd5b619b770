package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/kumark/pkg/config"
)

// projectDir returns a temp directory marked as a VCS root, so the upward
// config search never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor %q, got %q", config.FlavorCommonMark, result.Config.Flavor)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ProjectConfigName), `
flavor: gfm
conformance: true
jobs: 2
`)

	// The search starts in a subdirectory and walks up.
	subDir := filepath.Join(tmpDir, "docs", "guide")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if !result.Config.Conformance {
		t.Error("expected conformance enabled")
	}
	if result.Config.Jobs != 2 {
		t.Errorf("expected jobs 2, got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected default format to survive, got %q", result.Config.Format)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_SearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := projectDir(t)
	writeFile(t, filepath.Join(outer, ProjectConfigName), "flavor: gfm\n")

	inner := filepath.Join(outer, "vendor", "repo")
	if err := os.MkdirAll(filepath.Join(inner, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(inner))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.Project != "" {
		t.Errorf("expected no project config, got %s", result.Paths.Project)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ProjectConfigName), "flavor: gfm\nformat: table\n")

	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "format: json\nstrict_spans: true\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected explicit format to win, got %q", result.Config.Format)
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected project flavor to survive, got %q", result.Config.Flavor)
	}
	if !result.Config.StrictSpans {
		t.Error("expected strict spans enabled")
	}
	if !slices.Equal(result.LoadedFrom, []string{filepath.Join(tmpDir, ProjectConfigName), customPath}) {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ProjectConfigName), "flavor: commonmark\njobs: 2\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Flavor:      config.FlavorGFM,
		Jobs:        8,
		Conformance: true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q (CLI override), got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Conformance {
		t.Error("expected conformance true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid flavor", "flavor: invalid-flavor\n", "flavor"},
		{"unknown field", "rules: {}\n", "parse yaml"},
		{"bad glob", "ignore:\n  - \"docs/[\"\n", "ignore[0]"},
		{"negative jobs", "jobs: -1\n", "jobs"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := projectDir(t)
			configPath := filepath.Join(tmpDir, ProjectConfigName)
			writeFile(t, configPath, testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), testCase.want) {
				t.Errorf("error %q does not mention %q", err, testCase.want)
			}
			if !strings.Contains(err.Error(), configPath) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation error, got %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KUMARK_FLAVOR", "gfm")
	t.Setenv("KUMARK_JOBS", "3")
	t.Setenv("KUMARK_IGNORE", "a/**, b/** ,")
	t.Setenv("KUMARK_CONFORMANCE", "1")

	tmpDir := projectDir(t)
	writeFile(t, filepath.Join(tmpDir, ProjectConfigName), "flavor: commonmark\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 5}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected env flavor over project, got %q", result.Config.Flavor)
	}
	if result.Config.Jobs != 5 {
		t.Errorf("expected CLI jobs over env, got %d", result.Config.Jobs)
	}
	if !slices.Equal(result.Config.Ignore, []string{"a/**", "b/**"}) {
		t.Errorf("unexpected ignore %v", result.Config.Ignore)
	}
	if !result.Config.Conformance {
		t.Error("expected conformance from env")
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("KUMARK_STRICT_SPANS", "sometimes")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "KUMARK_STRICT_SPANS") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("log_level"); got != "KUMARK_LOG_LEVEL" {
		t.Errorf("GetEnvVarName(log_level) = %q", got)
	}
	if got := GetEnvVarName("rules"); got != "" {
		t.Errorf("GetEnvVarName(rules) = %q", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d vars, got %d", len(envMappings), len(vars))
	}
	if !slices.IsSortedFunc(vars, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) }) {
		t.Error("env vars are not sorted")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.StrictSpans = true
	base.Ignore = []string{"x"}

	merged := MergeAll(base, &config.Config{Format: config.FormatJSON}, &config.Config{Ignore: []string{"y"}})

	if merged.Format != config.FormatJSON {
		t.Errorf("format = %q", merged.Format)
	}
	if !merged.StrictSpans {
		t.Error("false in an override must not unset true")
	}
	if !slices.Equal(merged.Ignore, []string{"y"}) {
		t.Errorf("ignore = %v", merged.Ignore)
	}
	if !slices.Equal(base.Ignore, []string{"x"}) {
		t.Errorf("base was modified: %v", base.Ignore)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.Config
		errors   int
		warnings int
	}{
		{"nil", nil, 0, 0},
		{"defaults", config.NewConfig(), 0, 0},
		{"empty", &config.Config{}, 0, 0},
		{"bad color", &config.Config{Color: "sometimes"}, 1, 0},
		{"bad log level", &config.Config{LogLevel: "loud"}, 1, 0},
		{"bad format", &config.Config{Format: "sarif"}, 1, 0},
		{"extension without dot", &config.Config{Extensions: []string{"md", "."}}, 2, 0},
		{"no extensions", &config.Config{Extensions: []string{}}, 0, 1},
		{"good globs", &config.Config{Ignore: []string{"**/*.md", "docs/{a,b}/*"}}, 0, 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(testCase.cfg)
			if len(result.Errors) != testCase.errors {
				t.Errorf("errors = %v", result.AllMessages())
			}
			if len(result.Warnings) != testCase.warnings {
				t.Errorf("warnings = %v", result.AllMessages())
			}
		})
	}
}
