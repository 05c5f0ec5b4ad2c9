package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	OutDir       string `toml:"out_dir"`
	Prefix       string `toml:"prefix"`
	Title        string `toml:"title"`
	ScanDir      string `toml:"scan_dir"`
	Watch        *bool  `toml:"watch"`
	WatchTimeout string `toml:"watch_timeout"`
	QRSize       int    `toml:"qr_size"`
	QRRecovery   string `toml:"qr_recovery"`
	Cols         int    `toml:"cols"`
	Rows         int    `toml:"rows"`
	Margin       int    `toml:"margin"`
	Gap          int    `toml:"gap"`
	Captions     *bool  `toml:"captions"`
	Workers      int    `toml:"workers"`
	RawPayload   *bool  `toml:"raw_payload"`
	Verbose      *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gpg2qr/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gpg2qr", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out-dir", fc.OutDir, &cfg.OutDir)
	s.setString("prefix", fc.Prefix, &cfg.Prefix)
	s.setString("title", fc.Title, &cfg.Title)
	s.setString("scans", fc.ScanDir, &cfg.ScanDir)
	s.setString("qr-recovery", fc.QRRecovery, &cfg.QRRecovery)

	s.setInt("qr-size", fc.QRSize, &cfg.QRSize)
	s.setInt("cols", fc.Cols, &cfg.Cols)
	s.setInt("rows", fc.Rows, &cfg.Rows)
	s.setInt("margin", fc.Margin, &cfg.Margin)
	s.setInt("gap", fc.Gap, &cfg.Gap)
	s.setInt("workers", fc.Workers, &cfg.Workers)

	if err := s.setDuration("watch-timeout", fc.WatchTimeout, &cfg.WatchTimeout); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("captions", fc.Captions, &cfg.Captions)
	s.setBool("raw", fc.RawPayload, &cfg.RawPayload)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}
