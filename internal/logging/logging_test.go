package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/work-time-tracker/internal/logging"
)

func TestSetupConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.Setup(logging.Options{Level: "info", Console: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing from %q", out)
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wtt.log")
	logger, closer, err := logging.Setup(logging.Options{Level: "debug", File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug().Str("date", "2024-01-15").Msg("clocked in")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"date":"2024-01-15"`) {
		t.Errorf("log file = %q, want JSON line with date field", data)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	if _, _, err := logging.Setup(logging.Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
