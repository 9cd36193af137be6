package msgraph

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	DryRun    bool
	Overwrite bool
}

// Shift is the working span derived from one day of calendar events.
type Shift struct {
	Date   string
	Start  time.Time
	End    time.Time
	Events int
}

// Hours returns the length of the shift in fractional hours.
func (s Shift) Hours() float64 {
	h, _ := timecalc.Duration(s.Start, s.End)
	return h
}

// Backfiller is the part of the ledger a sync writes through.
type Backfiller interface {
	Record(day time.Time) (model.DailyRecord, bool)
	Backfill(date string, start time.Time, end *time.Time) (model.DailyRecord, bool, error)
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// eventZone picks the zone an event time is expressed in. Graph may report
// Windows zone names, which fall back to the requested timezone.
func eventZone(dt EventDateTime, timezone string) string {
	if dt.TimeZone != "" {
		if _, err := time.LoadLocation(dt.TimeZone); err == nil {
			return dt.TimeZone
		}
	}
	return timezone
}

// shouldSkip returns true if the event does not count as working time.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// DeriveShifts reduces calendar events to one shift per local date: the
// earliest start and the latest end of that day's busy events. Events that
// cross midnight are ignored. timezone names the local zone; "" means the
// system zone. Unparsable events are returned as errors and left out.
func DeriveShifts(events []CalendarEvent, timezone string) ([]Shift, []error) {
	loc := time.Local
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, []error{fmt.Errorf("loading timezone %q: %w", timezone, err)}
		}
		loc = l
	}

	byDate := map[string]*Shift{}
	var errs []error
	for _, event := range events {
		if shouldSkip(event) {
			continue
		}
		start, err := parseGraphTime(event.Start.DateTime, eventZone(event.Start, timezone))
		if err != nil {
			errs = append(errs, fmt.Errorf("event %q: parsing start time: %w", event.Subject, err))
			continue
		}
		end, err := parseGraphTime(event.End.DateTime, eventZone(event.End, timezone))
		if err != nil {
			errs = append(errs, fmt.Errorf("event %q: parsing end time: %w", event.Subject, err))
			continue
		}
		start, end = start.In(loc), end.In(loc)
		if !end.After(start) {
			continue
		}
		if !timecalc.SameDay(start, end.Add(-time.Nanosecond)) {
			continue
		}
		date := model.DateKey(start)

		s, ok := byDate[date]
		if !ok {
			byDate[date] = &Shift{Date: date, Start: start, End: end, Events: 1}
			continue
		}
		if start.Before(s.Start) {
			s.Start = start
		}
		if end.After(s.End) {
			s.End = end
		}
		s.Events++
	}

	shifts := make([]Shift, 0, len(byDate))
	for _, s := range byDate {
		shifts = append(shifts, *s)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Date < shifts[j].Date })
	return shifts, errs
}

// Sync backfills each shift into target and prints one line per day to out.
// Days that already have a record are skipped unless opts.Overwrite is set.
func Sync(target Backfiller, shifts []Shift, opts SyncOptions, out io.Writer) SyncResult {
	var result SyncResult

	for _, shift := range shifts {
		span := fmt.Sprintf("%s %s–%s (%s)", shift.Date,
			shift.Start.Format("15:04"), shift.End.Format("15:04"),
			timecalc.FormatDuration(shift.Hours()))

		_, exists := target.Record(shift.Start)
		if exists && !opts.Overwrite {
			fmt.Fprintf(out, "  – Skipped:  %s (already recorded)\n", shift.Date)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			end := shift.End
			if _, _, err := target.Backfill(shift.Date, shift.Start, &end); err != nil {
				fmt.Fprintf(out, "  ! Error saving %s: %v\n", shift.Date, err)
				result.Errors++
				continue
			}
		}

		if exists {
			fmt.Fprintf(out, "  ↑ Updated:  %s\n", span)
			result.Updated++
			continue
		}
		fmt.Fprintf(out, "  ✓ Imported: %s\n", span)
		result.Imported++
	}

	return result
}
