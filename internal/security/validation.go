// Package security provides input validation for files celltint reads and writes.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSizeLimitExceeded is returned by LimitedReader once its budget is spent.
var ErrSizeLimitExceeded = errors.New("size limit exceeded")

// ValidateOutputPath checks that path can be created as a regular file:
// it must be non-empty, must not name a directory, and its parent must exist.
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty output path")
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", path)
	}

	dir := filepath.Dir(filepath.Clean(path))
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to stat output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output parent is not a directory: %s", dir)
	}
	return nil
}

// ReadFileLimited reads a whole file, failing if it is larger than maxBytes.
func ReadFileLimited(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(NewLimitedReader(f, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it reports an error instead of a silent EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// A source that is exactly at the limit is still fine.
		var probe [1]byte
		if n, _ := l.R.Read(probe[:]); n == 0 {
			return 0, io.EOF
		}
		return 0, ErrSizeLimitExceeded
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
