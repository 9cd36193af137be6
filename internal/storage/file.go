package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// FileStore keeps the record set as a pretty-printed JSON array in one file.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the record set. A missing file is an empty set. A file that
// cannot be parsed is moved aside to <path>.corrupt so that a later Save
// does not overwrite the only copy.
func (s *FileStore) Load() []model.DailyRecord {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []model.DailyRecord{}
	}
	if err != nil {
		s.report(err)
		return []model.DailyRecord{}
	}

	var records []model.DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		backupPath := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			s.log.Warn().Err(renameErr).Str("path", s.path).Msg("could not back up corrupt record file")
		} else {
			s.log.Warn().Str("backup", backupPath).Msg("corrupt record file backed up")
		}
		s.report(err)
		return []model.DailyRecord{}
	}
	if records == nil {
		records = []model.DailyRecord{}
	}
	return records
}

func (s *FileStore) report(err error) {
	s.log.Error().Err(&ReadError{Source: s.path, Err: err}).Msg("loading records failed, starting empty")
}

// Save atomically replaces the file with the given records.
func (s *FileStore) Save(records []model.DailyRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	if records == nil {
		records = []model.DailyRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	s.log.Debug().Str("path", s.path).Int("records", len(records)).Msg("records saved")
	return nil
}
