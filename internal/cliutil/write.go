// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/internal/fileutil"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteFile writes content to name inside dir, creating dir when needed.
// An existing file is replaced only when overwrite is set; otherwise a
// *apierrors.ConfigError naming the overwrite option is returned.
func WriteFile(dir, name, content string, overwrite bool) (string, error) {
	if err := os.MkdirAll(dir, fileutil.DirMode); err != nil {
		return "", fmt.Errorf("cannot create output directory: %w", err)
	}
	path := filepath.Join(dir, name)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, fileutil.DocumentMode) //nolint:gosec // G302,G304: documents are public; path is built from the configured output directory
	if errors.Is(err, fs.ErrExist) {
		return "", &apierrors.ConfigError{
			Option:  "overwrite",
			Value:   false,
			Message: path + " already exists",
		}
	}
	if err != nil {
		return "", fmt.Errorf("cannot create %s: %w", path, err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}
	return path, nil
}
