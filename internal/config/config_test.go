package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/work-time-tracker/internal/config"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wtt", "config.yaml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load on first run = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	// The written template must itself parse to the defaults.
	again, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load template: %v", err)
	}
	if again != config.Default() {
		t.Errorf("template parses to %+v, want defaults", again)
	}
}

func TestLoadYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "store:\n  driver: sqlite\nlog:\n  file: /tmp/wtt.log\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != config.DriverSQLite {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.Log.File != "/tmp/wtt.log" || cfg.Log.Level != config.DefaultLogLevel {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Outlook.ClientID != config.DefaultClientID {
		t.Errorf("client id not defaulted: %q", cfg.Outlook.ClientID)
	}
	if got := cfg.StorePath("/base"); got != filepath.Join("/base", "records.db") {
		t.Errorf("StorePath = %q", got)
	}
}

func TestLoadJSONWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `// wtt config
{
  // where records live
  "store": {"driver": "json", "path": "/data/records.json"},
  "outlook": {"timezone": "Europe/Berlin"}
}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath("/base") != "/data/records.json" {
		t.Errorf("StorePath = %q", cfg.StorePath("/base"))
	}
	if cfg.Outlook.Timezone != "Europe/Berlin" || cfg.Outlook.TenantID != config.DefaultTenantID {
		t.Errorf("outlook = %+v", cfg.Outlook)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  driver: postgres\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != config.Default() {
		t.Error("parse error should still return defaults")
	}
}
