package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ludovicl/gpg2qr/internal/assemble"
	"github.com/ludovicl/gpg2qr/internal/ports"
)

// RestoreConfig contains the knobs for a restore run.
type RestoreConfig struct {
	// Workers bounds the parallel code decoding. Zero means one worker
	// per CPU.
	Workers int
}

// Restore reconstructs the payload from a source of scan images.
type Restore struct {
	cfg     RestoreConfig
	decoder ports.CodeDecoder
	logger  ports.Logger
}

// NewRestore creates a restore pipeline with the given collaborators.
func NewRestore(cfg RestoreConfig, decoder ports.CodeDecoder, logger ports.Logger) *Restore {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Restore{cfg: cfg, decoder: decoder, logger: logger}
}

// Run drains the source, decodes every scan on a worker pool, and
// reassembles the payload. Frame insertion happens on the calling
// goroutine only, after all decoding has finished.
func (r *Restore) Run(ctx context.Context, src ports.ScanSource) ([]byte, error) {
	start := time.Now()

	var scans []ports.Scan
	for {
		scan, err := src.Next(ctx)
		if errors.Is(err, ports.ErrNoMoreScans) {
			break
		}
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	r.logger.Info("scans collected", ports.Int("scans", len(scans)))

	raw := make([][]byte, len(scans))
	errs := make([]error, len(scans))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				b, err := r.decoder.Decode(scans[i].Image)
				if err != nil {
					errs[i] = fmt.Errorf("%s: %w", scans[i].Name, err)
					continue
				}
				raw[i] = b
			}
		}()
	}
	for i := range scans {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			r.logger.Error("scan decode failed", ports.String("scan", scans[i].Name), ports.Err(err))
			return nil, err
		}
	}

	payload, err := assemble.Reassemble(raw)
	if err != nil {
		return nil, err
	}
	r.logger.Info("payload reassembled",
		ports.Int("frames", len(raw)),
		ports.Int("bytes", len(payload)),
		ports.Duration("elapsed", time.Since(start)))
	return payload, nil
}

// RunUntilComplete consumes the source one scan at a time and stops as
// soon as every frame of the set has been collected. This is the watch
// workflow: scans trickle in from a camera dump and the run should end
// the moment the set is complete rather than wait for the source to
// drain.
func (r *Restore) RunUntilComplete(ctx context.Context, src ports.ScanSource) ([]byte, error) {
	start := time.Now()
	collector := assemble.NewCollector()

	for !collector.Complete() {
		scan, err := src.Next(ctx)
		if errors.Is(err, ports.ErrNoMoreScans) {
			break
		}
		if err != nil {
			return nil, err
		}
		b, err := r.decoder.Decode(scan.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", scan.Name, err)
		}
		if err := collector.Add(b); err != nil {
			return nil, fmt.Errorf("%s: %w", scan.Name, err)
		}
		r.logger.Info("frame collected",
			ports.String("scan", scan.Name),
			ports.Int("received", collector.Received()),
			ports.Int("expected", collector.Expected()))
	}

	payload, err := collector.Payload()
	if err != nil {
		return nil, err
	}
	r.logger.Info("payload reassembled",
		ports.Int("frames", collector.Received()),
		ports.Int("bytes", len(payload)),
		ports.Duration("elapsed", time.Since(start)))
	return payload, nil
}
