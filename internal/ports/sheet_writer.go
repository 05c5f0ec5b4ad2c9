package ports

import (
	"context"
	"image"
)

// SheetWriter persists one composed sheet image and returns the path it
// was written to. Page numbers are zero-based.
type SheetWriter interface {
	WriteSheet(ctx context.Context, page int, img image.Image) (string, error)
}
