package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/work-time-tracker/internal/merge"
	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// Import merges the records in data (a JSON array) into the ledger by date.
// It returns the number of records read.
func (l *Ledger) Import(data []byte) (int, error) {
	incoming, err := parseRecords(data)
	if err != nil {
		return 0, err
	}
	if err := l.commit(merge.UpsertByDate(l.records, incoming)); err != nil {
		return 0, err
	}
	l.log.Info().Int("records", len(incoming)).Msg("records imported")
	return len(incoming), nil
}

// Restore replaces the whole record set with the records in data.
func (l *Ledger) Restore(data []byte) (int, error) {
	incoming, err := parseRecords(data)
	if err != nil {
		return 0, err
	}
	if err := l.commit(merge.OverwriteAll(incoming)); err != nil {
		return 0, err
	}
	l.log.Info().Int("records", len(incoming)).Msg("backup restored")
	return len(incoming), nil
}

// Export returns the full record set as indented JSON.
func (l *Ledger) Export() ([]byte, error) {
	records := l.records
	if records == nil {
		records = []model.DailyRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return data, nil
}

// ExportFileName names an export file after the day it was taken.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("work-time-records_%s.json", now.Format(model.DateLayout))
}

// parseRecords decodes and validates an import file. Dates are normalized,
// times moved to the local zone, derived fields recomputed, and repeated
// dates collapse to the later entry.
func parseRecords(data []byte) ([]model.DailyRecord, error) {
	var raw []model.DailyRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ImportParseError{Err: err}
	}
	if raw == nil {
		return nil, &ImportParseError{Err: errors.New("expected a JSON array of records")}
	}

	parsed := make([]model.DailyRecord, 0, len(raw))
	for i, r := range raw {
		key, err := model.NormalizeDate(r.Date)
		if err != nil {
			return nil, &ImportParseError{Err: fmt.Errorf("record %d: %w", i, err)}
		}
		rec, err := build(key, local(r.StartTime), local(r.EndTime))
		if err != nil {
			return nil, &ImportParseError{Err: fmt.Errorf("record %d (%s): %w", i, key, err)}
		}
		parsed = append(parsed, rec)
	}
	return merge.UpsertByDate(nil, parsed), nil
}
