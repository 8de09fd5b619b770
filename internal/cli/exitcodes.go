package cli

import (
	"errors"

	"github.com/yaklabco/kumark/internal/configloader"
	"github.com/yaklabco/kumark/pkg/runner"
)

// Exit codes for kumark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMismatches indicates the conformance check found mismatches.
	ExitMismatches = 1

	// ExitParseErrors indicates one or more files could not be read or parsed.
	ExitParseErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// Errors that only signal an exit code.
var (
	// ErrMismatchesFound is returned by check when kumark and goldmark disagree.
	ErrMismatchesFound = errors.New("conformance mismatches found")

	// ErrParseFailed is returned when a file could not be read or parsed.
	ErrParseFailed = errors.New("one or more files failed to parse")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a run. Parse errors
// outrank mismatches.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitParseErrors
	case result.HasMismatches():
		return ExitMismatches
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMismatchesFound):
		return ExitMismatches
	case errors.Is(err, ErrParseFailed):
		return ExitParseErrors
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit status and needs no
// log line of its own.
func IsSignal(err error) bool {
	return errors.Is(err, ErrMismatchesFound) || errors.Is(err, ErrParseFailed)
}
