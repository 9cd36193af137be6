package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/work-time-tracker/internal/model"
)

// MonthSummary aggregates the records of one calendar month.
type MonthSummary struct {
	Year      int
	Month     time.Month
	Days      int // records in the month
	Completed int // records with a clock-out
	Worked    decimal.Decimal
	Overtime  decimal.Decimal
}

// Label returns the month as "YYYY-MM".
func (s MonthSummary) Label() string {
	return time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Summarize sums worked hours and overtime over records dated in the given
// month. Records without a clock-out count as days but add nothing.
func Summarize(records []model.DailyRecord, year int, month time.Month) MonthSummary {
	sum := MonthSummary{Year: year, Month: month, Worked: decimal.Zero, Overtime: decimal.Zero}
	for _, r := range records {
		day, err := model.ParseDateKey(r.Date)
		if err != nil || day.Year() != year || day.Month() != month {
			continue
		}
		sum.Days++
		if !r.Completed() {
			continue
		}
		sum.Completed++
		sum.Worked = sum.Worked.Add(decimal.NewFromFloat(r.WorkDuration))
		sum.Overtime = sum.Overtime.Add(decimal.NewFromFloat(r.Overtime))
	}
	return sum
}

// Sorted returns a copy of records ordered by date, newest first.
func Sorted(records []model.DailyRecord) []model.DailyRecord {
	out := make([]model.DailyRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// InMonth returns the records dated in the given month, in input order.
func InMonth(records []model.DailyRecord, year int, month time.Month) []model.DailyRecord {
	var out []model.DailyRecord
	for _, r := range records {
		day, err := model.ParseDateKey(r.Date)
		if err != nil {
			continue
		}
		if day.Year() == year && day.Month() == month {
			out = append(out, r)
		}
	}
	return out
}
