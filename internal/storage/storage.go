package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// RecordStore persists the full record set as one unit.
//
// Load never fails: a store that cannot be read reports a *ReadError to its
// logger and yields an empty set. Save replaces whatever was stored before.
type RecordStore interface {
	Load() []model.DailyRecord
	Save(records []model.DailyRecord) error
}

// ReadError describes persisted state that could not be read back.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading records from %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// BaseDir returns the root data directory: $WTT_HOME if set, else ~/.wtt.
func BaseDir() (string, error) {
	if dir := os.Getenv("WTT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".wtt"), nil
}
