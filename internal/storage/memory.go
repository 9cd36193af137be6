package storage

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// MemoryStore is an in-memory RecordStore. It keeps the encoded form, so
// callers never share timestamps with what was saved.
type MemoryStore struct {
	data  []byte
	Saves int
	// FailSave, when set, is returned by Save instead of storing.
	FailSave error
	log      zerolog.Logger
}

// NewMemoryStore returns a store preloaded with records.
func NewMemoryStore(records ...model.DailyRecord) *MemoryStore {
	s := &MemoryStore{log: zerolog.Nop()}
	if len(records) > 0 {
		_ = s.Save(records)
		s.Saves = 0
	}
	return s
}

// Load decodes the last saved set.
func (s *MemoryStore) Load() []model.DailyRecord {
	records := []model.DailyRecord{}
	if s.data == nil {
		return records
	}
	if err := json.Unmarshal(s.data, &records); err != nil {
		s.log.Error().Err(&ReadError{Source: "memory", Err: err}).Msg("loading records failed, starting empty")
		return []model.DailyRecord{}
	}
	return records
}

// WithLogger sets where read errors are reported.
func (s *MemoryStore) WithLogger(log zerolog.Logger) *MemoryStore {
	s.log = log
	return s
}

// SetEncoded replaces the stored bytes, like a slot written by something
// else.
func (s *MemoryStore) SetEncoded(data []byte) {
	s.data = data
}

// Save encodes and keeps records.
func (s *MemoryStore) Save(records []model.DailyRecord) error {
	if s.FailSave != nil {
		return s.FailSave
	}
	if records == nil {
		records = []model.DailyRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	s.data = data
	s.Saves++
	return nil
}
