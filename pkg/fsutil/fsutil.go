// Package fsutil provides file system helpers for kumark: source reads with
// categorized errors, atomic writes and sidecar backups.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"
)

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrBinary indicates the file holds binary data rather than text.
	ErrBinary = errors.New("binary file")

	// ErrInvalidUTF8 indicates the file is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrExists indicates a write target already exists.
	ErrExists = errors.New("file already exists")
)

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	// Path is the absolute or relative path to the file.
	Path string

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64
}

// ReadFile reads a text file and returns its content along with metadata.
// Content that CheckText rejects is reported with the path.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, categorize(path, "stat", err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, categorize(path, "read", err)
	}

	if err := CheckText(content); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", err, path)
	}

	info := &FileInfo{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	return content, info, nil
}

// CheckText rejects content that is not UTF-8 text: ErrBinary for a NUL
// byte near the start, ErrInvalidUTF8 (with the byte offset) for a
// malformed sequence.
func CheckText(content []byte) error {
	if bytes.IndexByte(content[:min(len(content), sniffLen)], 0) >= 0 {
		return ErrBinary
	}
	if utf8.Valid(content) {
		return nil
	}

	for offset := 0; offset < len(content); {
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, offset)
		}
		offset += size
	}
	return ErrInvalidUTF8
}

func categorize(path, op string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
