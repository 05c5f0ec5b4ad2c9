package gpg2qr_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludovicl/gpg2qr"
)

// TestBackupRestoreRoundTrip drives the whole pipeline with the real QR
// adapters: back a payload up as one code per sheet, then restore from
// the written sheets as if they were scans.
func TestBackupRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	secret := make([]byte, 180)
	for i := range secret {
		secret[i] = byte(i*7 + 13)
	}
	input := filepath.Join(dir, "key.bin")
	if err := os.WriteFile(input, secret, 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cfg := gpg2qr.DefaultConfig()
	cfg.Input = input
	cfg.OutDir = filepath.Join(dir, "sheets")
	cfg.Cols = 1
	cfg.Rows = 1
	cfg.Captions = false
	if err := cfg.ValidateBackup(); err != nil {
		t.Fatalf("ValidateBackup returned error: %v", err)
	}

	res, err := gpg2qr.Backup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Backup returned error: %v", err)
	}
	// 180 bytes -> 240 base64 chars -> ceil(240/52) = 5 frames, and one
	// code per page means one page per frame.
	if res.Frames != 5 {
		t.Errorf("expected 5 frames, got %d", res.Frames)
	}
	if res.Pages != res.Frames {
		t.Errorf("expected %d pages, got %d", res.Frames, res.Pages)
	}

	cfg.ScanDir = cfg.OutDir
	cfg.Output = filepath.Join(dir, "restored.bin")
	if err := cfg.ValidateRestore(); err != nil {
		t.Fatalf("ValidateRestore returned error: %v", err)
	}

	rres, err := gpg2qr.Restore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if rres.Bytes != len(secret) {
		t.Errorf("expected %d restored bytes, got %d", len(secret), rres.Bytes)
	}

	restored, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if !bytes.Equal(restored, secret) {
		t.Fatal("restored key material differs from original")
	}
}

func TestBackupMissingInput(t *testing.T) {
	cfg := gpg2qr.DefaultConfig()
	cfg.Input = filepath.Join(t.TempDir(), "does-not-exist.gpg")
	cfg.OutDir = t.TempDir()

	if _, err := gpg2qr.Backup(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
