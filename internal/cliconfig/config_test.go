package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input = "key.gpg"
	cfg.OutDir = "out"
	if err := cfg.ValidateBackup(); err != nil {
		t.Fatalf("ValidateBackup returned error: %v", err)
	}

	cfg = DefaultConfig()
	cfg.ScanDir = "scans"
	cfg.Output = "key.gpg"
	if err := cfg.ValidateRestore(); err != nil {
		t.Fatalf("ValidateRestore returned error: %v", err)
	}
}

func TestValidateBackupRequiresInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutDir = "out"
	if err := cfg.ValidateBackup(); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestValidateRestoreRequiresScanDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "key.gpg"
	if err := cfg.ValidateRestore(); err == nil {
		t.Fatal("expected error for missing scan dir")
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
out_dir = "/backups/qr"
qr_size = 512
cols = 3
watch = true
watch_timeout = "90s"
captions = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig returned error: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig returned error: %v", err)
	}
	if cfg.OutDir != "/backups/qr" {
		t.Errorf("expected out dir /backups/qr, got %s", cfg.OutDir)
	}
	if cfg.QRSize != 512 {
		t.Errorf("expected qr size 512, got %d", cfg.QRSize)
	}
	if cfg.Cols != 3 {
		t.Errorf("expected 3 cols, got %d", cfg.Cols)
	}
	if !cfg.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.WatchTimeout != 90*time.Second {
		t.Errorf("expected 90s watch timeout, got %v", cfg.WatchTimeout)
	}
	if cfg.Captions {
		t.Error("expected captions disabled")
	}
}

func TestFileConfigRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QRSize = 128

	fc := FileConfig{QRSize: 512}
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{"qr-size": true}); err != nil {
		t.Fatalf("ApplyFileConfig returned error: %v", err)
	}
	if cfg.QRSize != 128 {
		t.Errorf("flag value overridden by file: got %d", cfg.QRSize)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("GPG2QR_OUT_DIR", "/env/out")
	t.Setenv("GPG2QR_QR_SIZE", "320")
	t.Setenv("GPG2QR_WATCH", "true")
	t.Setenv("GPG2QR_WATCH_TIMEOUT", "45s")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.OutDir != "/env/out" {
		t.Errorf("expected /env/out, got %s", cfg.OutDir)
	}
	if cfg.QRSize != 320 {
		t.Errorf("expected qr size 320, got %d", cfg.QRSize)
	}
	if !cfg.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.WatchTimeout != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.WatchTimeout)
	}
}

func TestEnvConfigRespectsChangedFlags(t *testing.T) {
	t.Setenv("GPG2QR_QR_SIZE", "320")

	cfg := DefaultConfig()
	cfg.QRSize = 100
	if err := ApplyEnvConfig(&cfg, map[string]bool{"qr-size": true}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.QRSize != 100 {
		t.Errorf("flag value overridden by env: got %d", cfg.QRSize)
	}
}

func TestScanDirFlagWinsOverEnvAndFile(t *testing.T) {
	t.Setenv("GPG2QR_SCAN_DIR", "/env/scans")

	cfg := DefaultConfig()
	cfg.ScanDir = "/flag/scans"
	changed := map[string]bool{"scans": true}

	fc := FileConfig{ScanDir: "/file/scans"}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig returned error: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.ScanDir != "/flag/scans" {
		t.Errorf("flag value overridden: got %s", cfg.ScanDir)
	}
}

func TestApplyEnvConfigLayout(t *testing.T) {
	t.Setenv("GPG2QR_MARGIN", "64")
	t.Setenv("GPG2QR_GAP", "12")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.Margin != 64 {
		t.Errorf("expected margin 64, got %d", cfg.Margin)
	}
	if cfg.Gap != 12 {
		t.Errorf("expected gap 12, got %d", cfg.Gap)
	}
}

func TestApplyEnvConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("GPG2QR_WATCH_TIMEOUT", "soon")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
