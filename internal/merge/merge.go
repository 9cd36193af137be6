// Package merge reconciles record sets by their date key.
package merge

import "github.com/Tiliavir/work-time-tracker/internal/model"

// UpsertByDate returns records with each incoming record either replacing
// the existing record for its date or appended after the existing ones.
// Unaffected records keep their position. Neither input is modified.
func UpsertByDate(records, incoming []model.DailyRecord) []model.DailyRecord {
	out := make([]model.DailyRecord, 0, len(records)+len(incoming))
	index := make(map[string]int, len(records)+len(incoming))
	for _, r := range records {
		index[r.Date] = len(out)
		out = append(out, r.Clone())
	}
	for _, r := range incoming {
		if i, ok := index[r.Date]; ok {
			out[i] = r.Clone()
			continue
		}
		index[r.Date] = len(out)
		out = append(out, r.Clone())
	}
	return out
}

// OverwriteAll returns a copy of incoming, discarding whatever was there
// before. It is the backup-restore counterpart of UpsertByDate.
func OverwriteAll(incoming []model.DailyRecord) []model.DailyRecord {
	out := make([]model.DailyRecord, len(incoming))
	for i, r := range incoming {
		out[i] = r.Clone()
	}
	return out
}

// Find returns the index of the record for date, or -1.
func Find(records []model.DailyRecord, date string) int {
	for i, r := range records {
		if r.Date == date {
			return i
		}
	}
	return -1
}
