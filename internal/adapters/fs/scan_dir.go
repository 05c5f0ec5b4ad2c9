package fs

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludovicl/gpg2qr/internal/domain"
	"github.com/ludovicl/gpg2qr/internal/ports"
)

func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func loadScan(path string) (ports.Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.Scan{}, fmt.Errorf("%w: %s: %v", domain.ErrScanFailed, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return ports.Scan{}, fmt.Errorf("%w: %s: %v", domain.ErrScanFailed, path, err)
	}
	return ports.Scan{Name: path, Image: img}, nil
}

// DirSource implements ports.ScanSource over the image files already
// present in a directory. File order is sorted for stable diagnostics;
// reassembly does not depend on it.
type DirSource struct {
	paths []string
	pos   int
}

// NewDirSource lists the image files in dir. An empty directory is not
// an error here; the reassembler reports the missing frames.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isImagePath(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return &DirSource{paths: paths}, nil
}

// Next returns the next scan, or ErrNoMoreScans when the listing is
// exhausted.
func (s *DirSource) Next(ctx context.Context) (ports.Scan, error) {
	if err := ctx.Err(); err != nil {
		return ports.Scan{}, err
	}
	if s.pos >= len(s.paths) {
		return ports.Scan{}, ports.ErrNoMoreScans
	}
	path := s.paths[s.pos]
	s.pos++
	return loadScan(path)
}

// Close is a no-op for a directory listing.
func (s *DirSource) Close() error {
	return nil
}
