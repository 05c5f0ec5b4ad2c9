package cliconfig

import (
	"fmt"
	"time"
)

// Config holds the full CLI configuration for both backup and restore.
type Config struct {
	// Input is the key material file to back up.
	Input string

	// OutDir receives the composed sheet images.
	OutDir string

	// Prefix names the sheet files ("<prefix>-001.png").
	Prefix string

	// Title is printed in each sheet's caption, typically the key id.
	Title string

	// ScanDir holds the scan images for restore.
	ScanDir string

	// Output is where restore writes the reconstructed key material.
	Output string

	// Watch makes restore collect scans as they appear in ScanDir.
	Watch bool

	// WatchTimeout bounds how long watch mode waits between scans.
	WatchTimeout time.Duration

	// QRSize is the rendered code edge in pixels.
	QRSize int

	// QRRecovery is the error-correction level (low/medium/high/highest).
	QRRecovery string

	// Cols and Rows give the sheet grid.
	Cols int
	Rows int

	// Margin and Gap are the sheet spacing in pixels.
	Margin int
	Gap    int

	// Captions enables the per-sheet footer line.
	Captions bool

	// Workers bounds the parallel self-check and decode pools.
	Workers int

	// RawPayload treats the input (backup) or output (restore) as the
	// base64 text payload itself, skipping the base64 boundary step.
	RawPayload bool

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Prefix:       "gpg2qr",
		WatchTimeout: 5 * time.Minute,
		QRSize:       256,
		QRRecovery:   "high",
		Cols:         4,
		Rows:         5,
		Margin:       48,
		Gap:          24,
		Captions:     true,
	}
}

// ValidateBackup checks the fields the backup command needs.
func (c *Config) ValidateBackup() error {
	if c.Input == "" {
		return fmt.Errorf("input file is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return c.validateShared()
}

// ValidateRestore checks the fields the restore command needs.
func (c *Config) ValidateRestore() error {
	if c.ScanDir == "" {
		return fmt.Errorf("scan directory is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	if c.Watch && c.WatchTimeout <= 0 {
		return fmt.Errorf("watch timeout must be positive")
	}
	return c.validateShared()
}

func (c *Config) validateShared() error {
	if c.QRSize <= 0 {
		return fmt.Errorf("qr size must be positive")
	}
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("sheet grid needs at least one column and row")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses and sets an int from string if valid and flag not changed.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = n
	return nil
}

// setBoolFromString sets a bool from "true"/"false" if valid and flag not changed.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if s.changed[flag] {
		return
	}
	switch value {
	case "true", "1":
		*dst = true
	case "false", "0":
		*dst = false
	}
}
