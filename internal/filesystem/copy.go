package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"media-ingest/internal/logging"
)

// partSuffix marks an in-progress copy.
const partSuffix = ".part"

// CopyFile copies src to dst through a temporary sibling file and returns the
// number of bytes written. dst's parent directory must exist. On failure the
// temporary file is removed and dst is left untouched.
func CopyFile(src, dst string, config RetryConfig) (int64, error) {
	in, err := OpenWithRetry(src, config)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			logging.Warn("failed to close source %s: %v", src, err)
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("source %s is a directory", src)
	}

	part := dst + partSuffix
	n, err := writePart(in, part)
	if err != nil {
		if rmErr := os.Remove(part); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("failed to remove partial copy %s: %v", part, rmErr)
		}
		return 0, err
	}

	if err := os.Chtimes(part, info.ModTime(), info.ModTime()); err != nil {
		logging.Debug("could not preserve mtime on %s: %v", part, err)
	}

	if err := os.Rename(part, dst); err != nil {
		if rmErr := os.Remove(part); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("failed to remove partial copy %s: %v", part, rmErr)
		}
		return 0, fmt.Errorf("rename %s into place: %w", filepath.Base(dst), err)
	}
	return n, nil
}

func writePart(r io.Reader, part string) (int64, error) {
	out, err := os.OpenFile(part, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}

	n, err := io.Copy(out, r)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("copy bytes: %w", err)
	}
	return n, nil
}
