// Package ledger owns the record set and the per-day clock-in/clock-out
// state machine.
package ledger

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/work-time-tracker/internal/merge"
	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/report"
	"github.com/Tiliavir/work-time-tracker/internal/storage"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

// State is the clock state of a single date.
type State int

const (
	NotClockedIn State = iota
	ClockedIn
	ClockedOut
)

func (s State) String() string {
	switch s {
	case ClockedIn:
		return "clocked in"
	case ClockedOut:
		return "clocked out"
	default:
		return "not clocked in"
	}
}

// Ledger is the single owner of the record set. Every mutation is saved to
// the store before it becomes visible; a failed operation changes nothing.
type Ledger struct {
	store   storage.RecordStore
	records []model.DailyRecord
	log     zerolog.Logger
}

// New loads the records from store. Dates written in an older locale
// format are normalized, times move to local wall-clock time, worked hours
// and overtime are derived again from the times, and duplicate dates
// collapse to the later entry. A stored clock-out that is not after its
// clock-in is dropped and the day is left open.
func New(store storage.RecordStore, log zerolog.Logger) *Ledger {
	loaded := store.Load()
	for i, r := range loaded {
		key, err := model.NormalizeDate(r.Date)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("keeping record with unrecognised date")
			key = r.Date
		}
		rec, err := build(key, local(r.StartTime), local(r.EndTime))
		if err != nil {
			log.Warn().Err(err).Str("date", key).Msg("dropping invalid clock-out from stored record")
			rec = model.DailyRecord{Date: key, StartTime: local(r.StartTime)}
		}
		loaded[i] = rec
	}
	records := merge.UpsertByDate(nil, loaded)
	if len(records) != len(loaded) {
		log.Warn().Int("dropped", len(loaded)-len(records)).Msg("duplicate dates in stored records")
	}
	log.Debug().Int("records", len(records)).Msg("ledger loaded")
	return &Ledger{store: store, records: records, log: log}
}

// Records returns a copy of all records in stored order.
func (l *Ledger) Records() []model.DailyRecord {
	return merge.OverwriteAll(l.records)
}

// Record returns the record for the calendar day of day.
func (l *Ledger) Record(day time.Time) (model.DailyRecord, bool) {
	i := merge.Find(l.records, model.DateKey(day))
	if i < 0 {
		return model.DailyRecord{}, false
	}
	return l.records[i].Clone(), true
}

// Today returns the record for the calendar day of now.
func (l *Ledger) Today(now time.Time) (model.DailyRecord, bool) {
	return l.Record(now)
}

// State returns the clock state of the calendar day of now.
func (l *Ledger) State(now time.Time) State {
	r, ok := l.Today(now)
	switch {
	case !ok || r.StartTime == nil:
		return NotClockedIn
	case r.EndTime == nil:
		return ClockedIn
	default:
		return ClockedOut
	}
}

// ClockIn starts today's shift at now.
func (l *Ledger) ClockIn(now time.Time) (model.DailyRecord, error) {
	if l.State(now) != NotClockedIn {
		return model.DailyRecord{}, ErrDuplicateClockIn
	}
	start := stamp(now)
	rec := model.DailyRecord{Date: model.DateKey(now), StartTime: &start}
	if err := l.commit(merge.UpsertByDate(l.records, []model.DailyRecord{rec})); err != nil {
		return model.DailyRecord{}, err
	}
	l.log.Info().Str("date", rec.Date).Time("start", start).Msg("clocked in")
	return rec, nil
}

// ClockOut ends today's shift at now and derives worked hours and overtime.
func (l *Ledger) ClockOut(now time.Time) (model.DailyRecord, error) {
	switch l.State(now) {
	case NotClockedIn:
		return model.DailyRecord{}, ErrNotClockedIn
	case ClockedOut:
		return model.DailyRecord{}, ErrDuplicateClockOut
	}
	rec, _ := l.Today(now)
	end := stamp(now)
	rec, err := build(rec.Date, rec.StartTime, &end)
	if err != nil {
		return model.DailyRecord{}, err
	}
	if err := l.commit(merge.UpsertByDate(l.records, []model.DailyRecord{rec})); err != nil {
		return model.DailyRecord{}, err
	}
	l.log.Info().Str("date", rec.Date).Float64("worked", rec.WorkDuration).Float64("overtime", rec.Overtime).Msg("clocked out")
	return rec, nil
}

// Backfill creates or replaces the record for date outside the live clock
// flow. end may be nil for a shift without a clock-out. It reports whether
// an existing record was replaced.
func (l *Ledger) Backfill(date string, start time.Time, end *time.Time) (model.DailyRecord, bool, error) {
	key, err := model.NormalizeDate(date)
	if err != nil {
		return model.DailyRecord{}, false, err
	}
	s := stamp(start)
	var e *time.Time
	if end != nil {
		t := stamp(*end)
		e = &t
	}
	rec, err := build(key, &s, e)
	if err != nil {
		return model.DailyRecord{}, false, err
	}
	replaced := merge.Find(l.records, key) >= 0
	if err := l.commit(merge.UpsertByDate(l.records, []model.DailyRecord{rec})); err != nil {
		return model.DailyRecord{}, false, err
	}
	l.log.Info().Str("date", key).Bool("replaced", replaced).Msg("backfilled")
	return rec, replaced, nil
}

// MonthlyOvertimeTotal sums overtime over the records of the given month.
// Records without a clock-out contribute zero.
func (l *Ledger) MonthlyOvertimeTotal(year int, month time.Month) float64 {
	return l.Summary(year, month).Overtime.InexactFloat64()
}

// Summary aggregates the records of the given month.
func (l *Ledger) Summary(year int, month time.Month) report.MonthSummary {
	return report.Summarize(l.records, year, month)
}

func (l *Ledger) commit(next []model.DailyRecord) error {
	if err := l.store.Save(next); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	l.records = next
	return nil
}

// build assembles a record with its derived fields.
func build(date string, start, end *time.Time) (model.DailyRecord, error) {
	rec := model.DailyRecord{Date: date, StartTime: start, EndTime: end}
	if end == nil {
		return rec, nil
	}
	if start == nil {
		return model.DailyRecord{}, fmt.Errorf("%w: end time without start time", ErrInvalidRange)
	}
	worked, err := timecalc.Duration(*start, *end)
	if err != nil {
		return model.DailyRecord{}, err
	}
	rec.WorkDuration = worked
	rec.Overtime = timecalc.Overtime(worked)
	return rec, nil
}

// local returns a copy of t in the local zone.
func local(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	l := t.Local()
	return &l
}

// stamp moves t to local time and drops the monotonic reading and anything
// finer than a millisecond, so a timestamp compares equal to itself after a
// JSON round trip.
func stamp(t time.Time) time.Time {
	return t.Local().Round(0).Truncate(time.Millisecond)
}
