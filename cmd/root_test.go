package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/work-time-tracker/internal/config"
	"github.com/Tiliavir/work-time-tracker/internal/storage"
)

func TestSetup_CreatesConfigAndLedger(t *testing.T) {
	base := t.TempDir()
	t.Setenv("WTT_HOME", base)
	t.Cleanup(closeApp)

	if err := setup(statusCmd, nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if current == nil || current.ledger == nil {
		t.Fatal("setup should build the ledger")
	}
	if _, err := os.Stat(filepath.Join(base, "config.yaml")); err != nil {
		t.Errorf("config template not written: %v", err)
	}
	if current.cfg.Store.Driver != config.DriverJSON {
		t.Errorf("driver = %q, want json", current.cfg.Store.Driver)
	}
}

func TestSetup_FlagOverrides(t *testing.T) {
	base := t.TempDir()
	t.Setenv("WTT_HOME", base)
	t.Cleanup(closeApp)

	storeDriver = "sqlite"
	storePath = filepath.Join(base, "data", "wtt.db")
	t.Cleanup(func() { storeDriver, storePath = "", "" })

	if err := setup(statusCmd, nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if current.cfg.Store.Driver != config.DriverSQLite {
		t.Errorf("driver = %q, want sqlite", current.cfg.Store.Driver)
	}
	if _, err := os.Stat(storePath); err != nil {
		t.Errorf("sqlite database not created: %v", err)
	}
}

func TestSetup_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("WTT_HOME", t.TempDir())
	t.Cleanup(closeApp)

	storeDriver = "csv"
	t.Cleanup(func() { storeDriver = "" })

	if err := setup(statusCmd, nil); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}

func TestOpenStore(t *testing.T) {
	base := t.TempDir()

	cfg := config.Default()
	store, err := openStore(cfg, base, zerolog.Nop())
	if err != nil {
		t.Fatalf("openStore json: %v", err)
	}
	fs, ok := store.(*storage.FileStore)
	if !ok {
		t.Fatalf("store = %T, want *storage.FileStore", store)
	}
	if fs.Path() != filepath.Join(base, "records.json") {
		t.Errorf("path = %q", fs.Path())
	}

	cfg.Store.Driver = config.DriverSQLite
	store, err = openStore(cfg, base, zerolog.Nop())
	if err != nil {
		t.Fatalf("openStore sqlite: %v", err)
	}
	db, ok := store.(*storage.SQLiteStore)
	if !ok {
		t.Fatalf("store = %T, want *storage.SQLiteStore", store)
	}
	db.Close()
}
