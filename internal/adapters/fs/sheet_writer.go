package fs

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SheetFileWriter implements ports.SheetWriter by writing PNG files into
// a directory.
type SheetFileWriter struct {
	dir    string
	prefix string
}

// NewSheetFileWriter creates a writer for the given directory. The
// directory is created on first write if it does not exist.
func NewSheetFileWriter(dir, prefix string) *SheetFileWriter {
	if prefix == "" {
		prefix = "sheet"
	}
	return &SheetFileWriter{dir: dir, prefix: prefix}
}

// WriteSheet persists one sheet image atomically (write to temp file,
// then rename) so a crash never leaves a truncated page behind.
func (w *SheetFileWriter) WriteSheet(ctx context.Context, page int, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, fmt.Sprintf("%s-%03d.png", w.prefix, page+1))
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}
