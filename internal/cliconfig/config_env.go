package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GPG2QR_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out-dir", os.Getenv("GPG2QR_OUT_DIR"), &cfg.OutDir)
	s.setString("prefix", os.Getenv("GPG2QR_PREFIX"), &cfg.Prefix)
	s.setString("title", os.Getenv("GPG2QR_TITLE"), &cfg.Title)
	s.setString("scans", os.Getenv("GPG2QR_SCAN_DIR"), &cfg.ScanDir)
	s.setString("qr-recovery", os.Getenv("GPG2QR_QR_RECOVERY"), &cfg.QRRecovery)

	if err := s.setIntFromString("qr-size", os.Getenv("GPG2QR_QR_SIZE"), &cfg.QRSize); err != nil {
		return err
	}
	if err := s.setIntFromString("cols", os.Getenv("GPG2QR_COLS"), &cfg.Cols); err != nil {
		return err
	}
	if err := s.setIntFromString("rows", os.Getenv("GPG2QR_ROWS"), &cfg.Rows); err != nil {
		return err
	}
	if err := s.setIntFromString("margin", os.Getenv("GPG2QR_MARGIN"), &cfg.Margin); err != nil {
		return err
	}
	if err := s.setIntFromString("gap", os.Getenv("GPG2QR_GAP"), &cfg.Gap); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("GPG2QR_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setDuration("watch-timeout", os.Getenv("GPG2QR_WATCH_TIMEOUT"), &cfg.WatchTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("GPG2QR_WATCH"), &cfg.Watch)
	s.setBoolFromString("captions", os.Getenv("GPG2QR_CAPTIONS"), &cfg.Captions)
	s.setBoolFromString("raw", os.Getenv("GPG2QR_RAW_PAYLOAD"), &cfg.RawPayload)
	s.setBoolFromString("verbose", os.Getenv("GPG2QR_VERBOSE"), &cfg.Verbose)

	return nil
}
