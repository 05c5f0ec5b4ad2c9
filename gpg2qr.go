// Package gpg2qr turns an OpenPGP secret key or revocation certificate
// into printable sheets of QR codes, and reconstructs the original bytes
// from scans of those codes in any order.
//
// Example usage:
//
//	cfg := gpg2qr.DefaultConfig()
//	cfg.Input = "secret-key.gpg"
//	cfg.OutDir = "sheets"
//	if err := cfg.ValidateBackup(); err != nil {
//	    log.Fatal(err)
//	}
//	res, err := gpg2qr.Backup(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("pages:", res.Pages)
package gpg2qr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ludovicl/gpg2qr/internal/adapters/fs"
	logAdapter "github.com/ludovicl/gpg2qr/internal/adapters/log"
	"github.com/ludovicl/gpg2qr/internal/adapters/qr"
	"github.com/ludovicl/gpg2qr/internal/app"
	"github.com/ludovicl/gpg2qr/internal/cliconfig"
	"github.com/ludovicl/gpg2qr/internal/ports"
	"github.com/ludovicl/gpg2qr/internal/sheet"
)

// Config holds the configuration for backup and restore runs.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// BackupResult summarizes a completed backup run.
type BackupResult = app.BackupResult

// RestoreResult summarizes a completed restore run.
type RestoreResult struct {
	// Output is the file the reconstructed key material was written to.
	Output string

	// Bytes is the size of the reconstructed key material.
	Bytes int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the pipelines.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}

// Backup reads the input key material, splits it into frames, verifies
// that every rendered code decodes back byte-for-byte, and writes the
// composed sheet images. It either produces a fully verified set or
// nothing at all.
func Backup(ctx context.Context, cfg Config) (BackupResult, error) {
	input, err := os.ReadFile(cfg.Input)
	if err != nil {
		return BackupResult{}, fmt.Errorf("read input: %w", err)
	}
	payload := input
	if !cfg.RawPayload {
		payload = []byte(base64.StdEncoding.EncodeToString(input))
	}

	logger := pipelineLogger()
	b := app.NewBackup(
		app.BackupConfig{
			Workers: cfg.Workers,
			Layout: sheet.Layout{
				Cols:     cfg.Cols,
				Rows:     cfg.Rows,
				Margin:   cfg.Margin,
				Gap:      cfg.Gap,
				Captions: cfg.Captions,
				Title:    cfg.Title,
			},
		},
		qr.NewRenderer(qr.Config{Size: cfg.QRSize, Recovery: cfg.QRRecovery}),
		qr.NewDecoder(),
		fs.NewSheetFileWriter(cfg.OutDir, cfg.Prefix),
		logger,
	)
	return b.Run(ctx, payload)
}

// Restore decodes the scan images, reassembles the payload with full
// validation, and writes the reconstructed key material to cfg.Output.
// With cfg.Watch set, scans are collected as they appear in cfg.ScanDir
// until the set is complete.
func Restore(ctx context.Context, cfg Config) (RestoreResult, error) {
	logger := pipelineLogger()
	r := app.NewRestore(app.RestoreConfig{Workers: cfg.Workers}, qr.NewDecoder(), logger)

	var payload []byte
	if cfg.Watch {
		src, err := fs.NewWatchSource(cfg.ScanDir, cfg.WatchTimeout, logger)
		if err != nil {
			return RestoreResult{}, fmt.Errorf("watch scans: %w", err)
		}
		defer src.Close()
		payload, err = r.RunUntilComplete(ctx, src)
		if err != nil {
			return RestoreResult{}, err
		}
	} else {
		src, err := fs.NewDirSource(cfg.ScanDir)
		if err != nil {
			return RestoreResult{}, fmt.Errorf("list scans: %w", err)
		}
		defer src.Close()
		payload, err = r.Run(ctx, src)
		if err != nil {
			return RestoreResult{}, err
		}
	}

	out := payload
	if !cfg.RawPayload {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(payload)))
		if err != nil {
			return RestoreResult{}, fmt.Errorf("decode payload: %w", err)
		}
		out = decoded
	}
	if err := os.WriteFile(cfg.Output, out, 0o600); err != nil {
		return RestoreResult{}, fmt.Errorf("write output: %w", err)
	}
	return RestoreResult{Output: cfg.Output, Bytes: len(out)}, nil
}

func pipelineLogger() ports.Logger {
	return logAdapter.NewZerologAdapterWithLogger(cliconfig.Logger())
}
