package timecalc

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// StandardWorkHours is the shift length against which overtime is measured.
const StandardWorkHours = 10.0

// ErrInvalidRange is returned when an end time is not after its start time.
var ErrInvalidRange = errors.New("end time must be later than start time")

// Duration returns the hours between start and end at millisecond precision.
func Duration(start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("%w (start %s, end %s)", ErrInvalidRange,
			start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"))
	}
	return float64(end.Sub(start).Milliseconds()) / float64(time.Hour/time.Millisecond), nil
}

// Overtime returns worked hours minus the standard shift. Negative values
// mean under-time.
func Overtime(workedHours float64) float64 {
	return workedHours - StandardWorkHours
}

// FormatDuration formats fractional hours as HH:MM:SS, prefixed with "-"
// for negative input. Hours are not wrapped at 24.
func FormatDuration(hours float64) string {
	abs := math.Abs(hours)
	// Round to whole milliseconds first so 2.5h does not print as 02:29:59.
	seconds := int64(math.Floor(math.Round(abs*3600*1000) / 1000))
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	sign := ""
	if hours < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// ParseClock parses a wall-clock time of the form HH:MM or HH:MM:SS and
// returns it as an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q (want HH:MM or HH:MM:SS)", s)
}

// At returns the wall-clock time clock (HH:MM[:SS]) on the calendar day of
// day, in day's location.
func At(day time.Time, clock string) (time.Time, error) {
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	s := int(offset % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location()), nil
}

// MonthRange returns the first and last calendar day of the month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
