package ports

import (
	"context"
	"image"
	"io"
)

// Scan is one captured image plus a name for diagnostics.
type Scan struct {
	// Name identifies the scan, typically the source file path.
	Name string

	// Image is the captured picture of a single optical code.
	Image image.Image
}

// ScanSource yields scan images for a restore run. The order of scans
// carries no meaning: reassembly depends only on frame headers.
type ScanSource interface {
	// Next returns the next scan. It blocks until one is available,
	// returns ErrNoMoreScans when the source is drained, or the context
	// error when ctx is cancelled.
	Next(ctx context.Context) (Scan, error)

	// Close releases any resources held by the source.
	Close() error
}

// ErrNoMoreScans indicates the source has no further scans to yield.
var ErrNoMoreScans = io.EOF
