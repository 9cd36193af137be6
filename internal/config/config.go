package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for wtt, stored in ~/.wtt/config.yaml.
type Config struct {
	Store   StoreConfig   `yaml:"store" json:"store"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Outlook OutlookConfig `yaml:"outlook" json:"outlook"`
}

// StoreConfig selects where records are persisted.
type StoreConfig struct {
	// Driver is "json" (default) or "sqlite".
	Driver string `yaml:"driver" json:"driver"`
	// Path is the record file or database. Empty = records.json or
	// records.db in the data directory.
	Path string `yaml:"path" json:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar backfill settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `yaml:"tenant_id" json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `yaml:"client_id" json:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = local.
	Timezone string `yaml:"timezone" json:"timezone"`
}

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"

	DefaultLogLevel = "warn"
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Store: StoreConfig{Driver: DriverJSON},
		Log:   LogConfig{Level: DefaultLogLevel},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# wtt configuration
#
# All settings are optional; the defaults below work out of the box.

store:
  # "json" keeps records in one JSON file, "sqlite" in a SQLite database.
  driver: json
  # Record file or database path. Empty = records.json / records.db next to
  # this file.
  path: ""

log:
  # One of: debug, info, warn, error.
  level: warn
  # Also append JSON log lines to this file. Empty = console only.
  file: ""

# Microsoft Graph / Outlook calendar backfill (wtt outlook sync).
outlook:
  # "common" for personal accounts and any organisation, or your tenant GUID.
  tenant_id: common
  # Public Azure CLI app; replace with your own app registration if needed.
  client_id: 04b07795-8542-4c4a-95af-30b2c573d5ab
  # IANA timezone for calendar times, e.g. "Europe/Berlin". Empty = local.
  timezone: ""
`

// DefaultPath returns the config path inside the data directory.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, "config.yaml")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config at path, creating it with annotated defaults on
// first run. Files ending in .json are parsed as JSON with // line comments;
// anything else as YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := Default()
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = def.Store.Driver
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}

	switch cfg.Store.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return Default(), fmt.Errorf("config file %s: unknown store driver %q (want %q or %q)",
			path, cfg.Store.Driver, DriverJSON, DriverSQLite)
	}
	return cfg, nil
}

// StorePath returns the configured record path, or the default one for the
// driver inside baseDir.
func (c Config) StorePath(baseDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Driver == DriverSQLite {
		return filepath.Join(baseDir, "records.db")
	}
	return filepath.Join(baseDir, "records.json")
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
