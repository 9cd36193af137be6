package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical layout of a record's date key.
const DateLayout = "2006-01-02"

// DailyRecord is the work record for one calendar date.
// WorkDuration and Overtime are in fractional hours and are derived from
// StartTime and EndTime; both are 0 until the shift is completed.
type DailyRecord struct {
	Date         string     `json:"date"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	WorkDuration float64    `json:"workDuration"`
	Overtime     float64    `json:"overtime"`
}

// Completed reports whether the record has both a start and an end time.
func (r DailyRecord) Completed() bool {
	return r.StartTime != nil && r.EndTime != nil
}

// Clone returns a deep copy of r, so timestamps are not shared.
func (r DailyRecord) Clone() DailyRecord {
	out := r
	if r.StartTime != nil {
		t := *r.StartTime
		out.StartTime = &t
	}
	if r.EndTime != nil {
		t := *r.EndTime
		out.EndTime = &t
	}
	return out
}

// DateKey returns the date key for the calendar day of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a canonical date key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, time.Local)
}

// NormalizeDate converts a date string to the canonical key.
// Besides the canonical form it accepts the locale forms written by the
// browser version of the tracker, e.g. "2024/1/15" or "2024-1-15".
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateKey(t), nil
	}

	sep := "/"
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", fmt.Errorf("unrecognised date %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("unrecognised date %q", s)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow; reject instead of silently shifting.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", fmt.Errorf("invalid calendar date %q", s)
	}
	return DateKey(t), nil
}
