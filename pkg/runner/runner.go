package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kumark/internal/logging"
	"github.com/yaklabco/kumark/pkg/config"
	"github.com/yaklabco/kumark/pkg/conformance"
	"github.com/yaklabco/kumark/pkg/fsutil"
	"github.com/yaklabco/kumark/pkg/grammar"
	"github.com/yaklabco/kumark/pkg/parser/goldmark"
	"github.com/yaklabco/kumark/pkg/symbol"
	"github.com/yaklabco/kumark/pkg/syntax"
)

// Runner parses files with the reference grammar.
type Runner struct {
	logger *log.Logger
}

// New creates a new Runner. A nil logger means the logger carried by the
// context passed to Run, or the default logger.
func New(logger *log.Logger) *Runner {
	return &Runner{logger: logger}
}

func (r *Runner) loggerFor(ctx context.Context) *log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. Each worker owns its grammar layers, so no parser state is shared
// between goroutines.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := r.loggerFor(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.effectiveConfig()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, newFileParser(cfg, logger))
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldElements, result.Stats.ElementsTotal,
		logging.FieldMismatches, result.Stats.MismatchesTotal)

	return result, nil
}

// ParseContent parses one in-memory document the way Run parses a file.
// path only labels the outcome and log records.
func (r *Runner) ParseContent(ctx context.Context, cfg *config.Config, path string, content []byte) FileOutcome {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return newFileParser(cfg, r.loggerFor(ctx)).parse(ctx, path, content)
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, fp *fileParser) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := fp.parseFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// fileParser holds one worker's grammar and outline state.
type fileParser struct {
	blocks  *syntax.Layer
	outline *goldmark.Parser
	logger  *log.Logger
}

func newFileParser(cfg *config.Config, logger *log.Logger) *fileParser {
	fp := &fileParser{
		blocks: grammar.Blocks(syntax.WithStrictSpans(cfg.StrictSpans)),
		logger: logger,
	}
	if cfg.Conformance {
		fp.outline = goldmark.New(string(cfg.Flavor))
	}
	return fp
}

func (fp *fileParser) parseFile(ctx context.Context, path string) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	fp.logger.Debug("read", logging.FieldPath, path, logging.FieldSize, info.Size)
	return fp.parse(ctx, path, content)
}

func (fp *fileParser) parse(ctx context.Context, path string, content []byte) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := fp.logger.With(logging.FieldPath, path)
	ctx = logging.WithLogger(ctx, logger)

	elems, err := fp.blocks.Parse(ctx, symbol.NewStream(string(content)))
	if err != nil {
		logger.Debug("parse failed", logging.FieldError, err)
		outcome.Error = fmt.Errorf("parse: %w", err)
		return outcome
	}
	outcome.Elements = elems

	if fp.outline != nil {
		blocks, err := fp.outline.Outline(ctx, content)
		if err != nil {
			outcome.Error = fmt.Errorf("outline: %w", err)
			return outcome
		}
		outcome.Mismatches = conformance.Compare(elems, blocks)
	}

	logger.Debug("parsed",
		logging.FieldElements, len(outcome.Elements),
		logging.FieldMismatches, len(outcome.Mismatches))

	return outcome
}
