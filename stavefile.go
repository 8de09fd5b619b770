//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"tg":  Test.Grammar,
	"tf":  Test.Fuzz,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"bp":  Bench.Parse,
	"bc":  Bench.Corpus,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

const binary = "bin/kumark"

// corePackages are the parsing packages: symbol stream, dispatch, grammar.
var corePackages = []string{"./pkg/symbol", "./pkg/syntax", "./pkg/grammar"}

// fuzzTargets lists every fuzz function by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/grammar", "FuzzParse"},
	{"./pkg/parser/goldmark", "FuzzOutline"},
	{"./pkg/parser/goldmark", "FuzzOutlineGFM"},
	{"./pkg/parser/goldmark", "FuzzOutlineDeterministic"},
}

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the kumark binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building kumark...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/kumark")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts and the fuzz cache for this module.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return sh.RunV("go", "clean", "-fuzzcache")
}

// Install installs kumark to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing kumark...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/kumark")
}

// Symbols prints the symbol stream of the file named by $KUMARK_FILE.
func Symbols() error {
	path := os.Getenv("KUMARK_FILE")
	if path == "" {
		return errors.New("set KUMARK_FILE to the document to trace")
	}
	st.Deps(Build)
	return sh.RunV(binary, "symbols", path)
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails",
		"-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Grammar runs the parsing packages' tests verbosely, without coverage.
func (Test) Grammar() error {
	fmt.Println("Running parser core tests...")
	return gotestsum("testdox", append([]string{"-race"}, corePackages...)...)
}

// Fuzz runs each fuzz target for $KUMARK_FUZZTIME (default 30s).
// Set KUMARK_FUZZ to a target name to run only that one.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("KUMARK_FUZZTIME"), "30s")
	if _, err := time.ParseDuration(fuzzTime); err != nil {
		return fmt.Errorf("KUMARK_FUZZTIME: %w", err)
	}
	only := os.Getenv("KUMARK_FUZZ")

	ran := 0
	for _, fuzz := range fuzzTargets {
		if only != "" && only != fuzz.name {
			continue
		}
		fmt.Printf("Fuzzing %s in %s for %s...\n", fuzz.name, fuzz.pkg, fuzzTime)
		if err := sh.RunV("go", "test",
			"-run", "^$",
			"-fuzz", "^"+fuzz.name+"$",
			"-fuzztime", fuzzTime,
			fuzz.pkg,
		); err != nil {
			return fmt.Errorf("%s: %w", fuzz.name, err)
		}
		ran++
	}
	if ran == 0 {
		return fmt.Errorf("no fuzz target named %q", only)
	}
	return nil
}

// Cover writes an HTML coverage report to coverage.html.
func (Test) Cover() error {
	st.Deps(Test.Default)
	fmt.Println("Writing coverage.html...")
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet, including the files behind the stave build tag.
func (Lint) Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", "stave", "stavefile.go")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs every check CI runs, stopping at the first failure.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.Seeds,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Seeds replays the fuzz seed corpora without fuzzing.
func (CI) Seeds() error {
	for _, fuzz := range fuzzTargets {
		if err := sh.RunV("go", "test", "-run", "^"+fuzz.name+"$", fuzz.pkg); err != nil {
			return fmt.Errorf("%s seeds: %w", fuzz.name, err)
		}
	}
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make(map[string]string, len(files))
	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = string(content)
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if string(content) != before[name] {
			return errors.New(name + " changed after 'go mod tidy'; commit the result")
		}
	}
	return nil
}

// Cross builds kumark for the platforms it is released on.
func (CI) Cross() error {
	platforms := []string{"linux/amd64", "linux/arm64", "darwin/arm64", "windows/amd64"}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  %s\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/kumark"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Parse runs the parser benchmarks matching $KUMARK_BENCH (default all).
// BenchmarkParse_LongLine reports per-size results; ns/op should grow in
// step with the size.
func (Bench) Parse() error {
	pattern := cmp.Or(os.Getenv("KUMARK_BENCH"), ".")
	args := append([]string{"test", "-run", "^$", "-bench", pattern, "-benchmem"}, corePackages...)
	return sh.RunV("go", args...)
}

// Corpus parses every Markdown file under $KUMARK_CORPUS (default: the
// repository) with conformance checks, printing the statistics block.
func (Bench) Corpus() error {
	st.Deps(Build)
	corpus := cmp.Or(os.Getenv("KUMARK_CORPUS"), ".")
	fmt.Printf("Checking %s against goldmark...\n", corpus)
	return sh.RunV(binary, "check", "--stats", "--jobs", "0", corpus)
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gotestsum runs go test through gotestsum with the given output format,
// sized by $STAVE_NUM_PROCESSORS.
func gotestsum(format string, args ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := []string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}
	return sh.RunV("go", append(cmdArgs, args...)...)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
