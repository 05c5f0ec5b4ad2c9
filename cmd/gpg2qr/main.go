package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ludovicl/gpg2qr"
	"github.com/ludovicl/gpg2qr/internal/cliconfig"
)

const helpDescription = `
Back up an OpenPGP secret key or revocation certificate as printable QR
code sheets, and restore it later from photos or scans of those sheets.

Highlights:
  - Every code is verified to decode back byte-for-byte before a single
    page is written.
  - Scan order never matters: each code carries its own position header.
  - Restore refuses partial, duplicated, or inconsistent scan sets; you
    get an exact key back or a precise diagnostic.
  - Configure via file ($HOME/.gpg2qr/config.toml), GPG2QR_* environment
    variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  gpg2qr backup --in secret-key.gpg --out-dir sheets --title "0xDEADBEEF"
  gpg2qr restore --scans photos/ --out secret-key.gpg
  gpg2qr restore --scans camera-dump/ --out secret-key.gpg --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "gpg2qr",
		Short:   "Paper backups of OpenPGP keys as QR code sheets",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.gpg2qr/config.toml)")
	root.PersistentFlags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	// loadConfig layers file and environment config under the flags that
	// were explicitly set on cmd.
	loadConfig := func(cmd *cobra.Command) error {
		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}
		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		return nil
	}

	backup := &cobra.Command{
		Use:   "backup",
		Short: "Split key material into QR codes and write verified sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.ValidateBackup(); err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			res, err := gpg2qr.Backup(ctx, cfg)
			if err != nil {
				return err
			}
			log.Info().
				Int("frames", res.Frames).
				Int("pages", res.Pages).
				Strs("sheets", res.SheetPaths).
				Msg("backup written")
			return nil
		},
	}
	backup.Flags().StringVar(&cfg.Input, "in", cfg.Input, "key material file to back up")
	backup.Flags().StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "directory for the sheet images")
	backup.Flags().StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "sheet file name prefix")
	backup.Flags().StringVar(&cfg.Title, "title", cfg.Title, "caption title, typically the key id")
	backup.Flags().IntVar(&cfg.QRSize, "qr-size", cfg.QRSize, "rendered code edge in pixels")
	backup.Flags().StringVar(&cfg.QRRecovery, "qr-recovery", cfg.QRRecovery, "error-correction level (low|medium|high|highest)")
	backup.Flags().IntVar(&cfg.Cols, "cols", cfg.Cols, "codes per sheet row")
	backup.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "code rows per sheet")
	backup.Flags().IntVar(&cfg.Margin, "margin", cfg.Margin, "sheet margin in pixels")
	backup.Flags().IntVar(&cfg.Gap, "gap", cfg.Gap, "gap between codes in pixels")
	backup.Flags().BoolVar(&cfg.Captions, "captions", cfg.Captions, "print a caption line on each sheet")
	backup.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel self-check workers (0 = one per CPU)")
	backup.Flags().BoolVar(&cfg.RawPayload, "raw", cfg.RawPayload, "input is already base64 text; skip encoding")

	restore := &cobra.Command{
		Use:   "restore",
		Short: "Reassemble key material from scans of the QR sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			if err := cfg.ValidateRestore(); err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			res, err := gpg2qr.Restore(ctx, cfg)
			if err != nil {
				return err
			}
			log.Info().
				Str("output", res.Output).
				Int("bytes", res.Bytes).
				Msg("key material restored")
			return nil
		},
	}
	restore.Flags().StringVar(&cfg.ScanDir, "scans", cfg.ScanDir, "directory containing the scan images")
	restore.Flags().StringVar(&cfg.Output, "out", cfg.Output, "file to write the reconstructed key material to")
	restore.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "collect scans as they appear in the directory")
	restore.Flags().DurationVar(&cfg.WatchTimeout, "watch-timeout", cfg.WatchTimeout, "idle time before watch mode gives up")
	restore.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel decode workers (0 = one per CPU)")
	restore.Flags().BoolVar(&cfg.RawPayload, "raw", cfg.RawPayload, "write the base64 payload as-is; skip decoding")

	root.AddCommand(backup, restore)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("gpg2qr")
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
