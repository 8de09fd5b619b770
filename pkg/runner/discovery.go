package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// matcher is a compiled set of exclude patterns.
type matcher []glob.Glob

func compileGlobs(patterns []string) (matcher, error) {
	globs := make(matcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// match reports whether relPath, or its base name, matches any pattern.
// Directories also try relPath+"/" so "vendor/**" skips vendor itself.
func (m matcher) match(relPath string, dir bool) bool {
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range m {
		if g.Match(relPath) || g.Match(base) || (dir && g.Match(relPath+"/")) {
			return true
		}
	}
	return false
}

// walker carries the per-call discovery state.
type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	exclude    matcher
	follow     bool
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted, deduplicated list of absolute file paths.
// Files named explicitly are kept regardless of extension.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			files = append(files, absPath)
			continue
		}

		discovered, err := w.walk(absPath)
		if err != nil {
			return nil, err
		}
		files = append(files, discovered...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk returns the matching files under root. Hidden entries below root
// are skipped.
func (w *walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && w.exclude.match(w.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// Broken symlink.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			if info.IsDir() {
				if !w.follow || w.exclude.match(w.rel(path), true) {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Intentionally skip unresolvable symlinks
				}
				// WalkDir uses Lstat on its root, so walk the target.
				subFiles, err := w.walk(realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if w.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (w *walker) matches(path string) bool {
	ext := filepath.Ext(path)
	if !slices.ContainsFunc(w.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	return !w.exclude.match(w.rel(path), false)
}
