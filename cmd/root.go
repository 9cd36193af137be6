package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/config"
	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/logging"
	"github.com/Tiliavir/work-time-tracker/internal/storage"
)

var (
	configPath   string
	storePath    string
	storeDriver  string
	logLevelFlag string
)

// now is the clock every command reads; tests replace it.
var now = time.Now

// app is what a command runs against, built once per invocation.
type app struct {
	cfg     config.Config
	base    string
	log     zerolog.Logger
	ledger  *ledger.Ledger
	closers []io.Closer
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "wtt",
	Short: "Work Time Tracker – daily clock-in/clock-out with overtime",
	Long: `wtt records when you start and stop work each day, derives the hours
worked and the overtime against a 10-hour standard shift, and keeps
everything locally in ~/.wtt/ (or $WTT_HOME).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.wtt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Record store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "driver", "", "Record store driver: json or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// setup loads the config, configures logging and opens the ledger.
func setup(cmd *cobra.Command, args []string) error {
	base, err := storage.BaseDir()
	if err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(base)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if storeDriver != "" {
		if storeDriver != config.DriverJSON && storeDriver != config.DriverSQLite {
			return fmt.Errorf("unknown --driver %q (want %q or %q)", storeDriver, config.DriverJSON, config.DriverSQLite)
		}
		cfg.Store.Driver = storeDriver
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	// The dashboard owns the terminal; console logging would tear its frame.
	var console io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "dashboard" {
		console = nil
	}
	logger, logCloser, err := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, base: base, log: logger, closers: []io.Closer{logCloser}}
	current = a

	store, err := openStore(cfg, base, logger)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	a.ledger = ledger.New(store, logger)
	return nil
}

// openStore returns the record store selected by cfg.
func openStore(cfg config.Config, base string, log zerolog.Logger) (storage.RecordStore, error) {
	path := cfg.StorePath(base)
	log.Debug().Str("driver", cfg.Store.Driver).Str("path", path).Msg("opening record store")
	if cfg.Store.Driver == config.DriverSQLite {
		store, err := storage.NewSQLiteStore(path, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return storage.NewFileStore(path, log), nil
}

func closeApp() {
	if current == nil {
		return
	}
	for i := len(current.closers) - 1; i >= 0; i-- {
		if err := current.closers[i].Close(); err != nil {
			current.log.Warn().Err(err).Msg("closing resource")
		}
	}
	current = nil
}
