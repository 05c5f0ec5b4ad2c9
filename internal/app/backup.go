package app

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/ludovicl/gpg2qr/internal/assemble"
	"github.com/ludovicl/gpg2qr/internal/domain"
	"github.com/ludovicl/gpg2qr/internal/framing"
	"github.com/ludovicl/gpg2qr/internal/ports"
	"github.com/ludovicl/gpg2qr/internal/sheet"
)

// BackupConfig contains the knobs for a backup run.
type BackupConfig struct {
	// Workers bounds the parallel self-check. Zero means one worker per CPU.
	Workers int

	// Layout is the page grid handed to the sheet compositor.
	Layout sheet.Layout
}

// BackupResult summarizes a completed backup run.
type BackupResult struct {
	PayloadBytes int
	Frames       int
	Pages        int
	SheetPaths   []string
}

// Backup turns a payload into verified, composed sheet images. Every
// frame is self-checked (render, decode, compare) before any page is
// written, and the decoded frames are reassembled and compared against
// the payload as an end-to-end integrity check.
type Backup struct {
	cfg      BackupConfig
	renderer ports.CodeRenderer
	decoder  ports.CodeDecoder
	sheets   ports.SheetWriter
	logger   ports.Logger
}

// NewBackup creates a backup pipeline with the given collaborators.
func NewBackup(cfg BackupConfig, renderer ports.CodeRenderer, decoder ports.CodeDecoder, sheets ports.SheetWriter, logger ports.Logger) *Backup {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Backup{
		cfg:      cfg,
		renderer: renderer,
		decoder:  decoder,
		sheets:   sheets,
		logger:   logger,
	}
}

// Run executes the backup pipeline for one payload.
func (b *Backup) Run(ctx context.Context, payload []byte) (BackupResult, error) {
	start := time.Now()

	frames, err := framing.Split(payload)
	if err != nil {
		return BackupResult{}, err
	}
	serialized := make([][]byte, len(frames))
	for i, f := range frames {
		serialized[i], err = framing.Encode(f.Index, f.Count, f.Data)
		if err != nil {
			return BackupResult{}, err
		}
	}
	b.logger.Info("payload split",
		ports.Int("bytes", len(payload)),
		ports.Int("frames", len(frames)))

	images, recovered, err := b.selfCheck(ctx, serialized)
	if err != nil {
		return BackupResult{}, err
	}

	// End-to-end check: the bytes the codes actually decode to must
	// rebuild the exact payload we started from.
	rebuilt, err := assemble.Reassemble(recovered)
	if err != nil {
		return BackupResult{}, err
	}
	if err := assemble.Verify(payload, rebuilt); err != nil {
		return BackupResult{}, err
	}

	pages, err := sheet.Compose(images, b.cfg.Layout)
	if err != nil {
		return BackupResult{}, err
	}
	paths := make([]string, 0, len(pages))
	for p, img := range pages {
		path, err := b.sheets.WriteSheet(ctx, p, img)
		if err != nil {
			return BackupResult{}, fmt.Errorf("write sheet %d: %w", p+1, err)
		}
		paths = append(paths, path)
	}

	b.logger.Info("backup complete",
		ports.Int("frames", len(frames)),
		ports.Int("pages", len(pages)),
		ports.Duration("elapsed", time.Since(start)))

	return BackupResult{
		PayloadBytes: len(payload),
		Frames:       len(frames),
		Pages:        len(pages),
		SheetPaths:   paths,
	}, nil
}

// selfCheck renders and immediately decodes every frame on a worker
// pool. All workers drain before failures are examined, and the lowest
// failing index wins, so diagnostics stay deterministic regardless of
// scheduling.
func (b *Backup) selfCheck(ctx context.Context, serialized [][]byte) ([]image.Image, [][]byte, error) {
	images := make([]image.Image, len(serialized))
	recovered := make([][]byte, len(serialized))
	errs := make([]error, len(serialized))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = b.checkFrame(ctx, i, serialized[i], images, recovered)
			}
		}()
	}
	for i := range serialized {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			b.logger.Error("frame self-check failed", ports.Int("frame", i), ports.Err(err))
			return nil, nil, err
		}
	}
	return images, recovered, nil
}

func (b *Backup) checkFrame(ctx context.Context, i int, frame []byte, images []image.Image, recovered [][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := b.renderer.Render(frame)
	if err != nil {
		return fmt.Errorf("frame %d: %w", i, err)
	}
	got, err := b.decoder.Decode(img)
	if err != nil {
		return fmt.Errorf("%w: frame %d: %v", domain.ErrFrameRoundTrip, i, err)
	}
	if !bytes.Equal(got, frame) {
		return fmt.Errorf("%w: frame %d decoded to different bytes", domain.ErrFrameRoundTrip, i)
	}
	images[i] = img
	recovered[i] = got
	return nil
}
