package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/notify"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

const noTime = "--:--:--"

var (
	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// sink returns where a command's transient messages go.
func sink(cmd *cobra.Command) notify.Sink {
	return notify.WriterSink{W: cmd.OutOrStdout()}
}

func clockText(t *time.Time) string {
	if t == nil {
		return noTime
	}
	return t.Local().Format("15:04:05")
}

func workedText(rec model.DailyRecord) string {
	if !rec.Completed() {
		return noTime
	}
	return timecalc.FormatDuration(rec.WorkDuration)
}

func overtimeText(rec model.DailyRecord) string {
	if !rec.Completed() {
		return noTime
	}
	return timecalc.FormatDuration(rec.Overtime)
}

// hoursStyle colours a signed number of hours: green at or above zero,
// red below.
func hoursStyle(hours float64) lipgloss.Style {
	if hours < 0 {
		return negativeStyle
	}
	return positiveStyle
}

// renderOvertime colours a record's overtime; records without a clock-out
// have none and render neutral.
func renderOvertime(rec model.DailyRecord) string {
	if !rec.Completed() {
		return neutralStyle.Render(noTime)
	}
	return hoursStyle(rec.Overtime).Render(overtimeText(rec))
}

func renderHours(hours float64) string {
	return hoursStyle(hours).Render(timecalc.FormatDuration(hours))
}

// clockOutMessage reports the day's overtime, or the shortfall when the
// shift was under the standard length.
func clockOutMessage(rec model.DailyRecord) string {
	if rec.Overtime >= 0 {
		return fmt.Sprintf("Clocked out at %s. Overtime today: %s",
			clockText(rec.EndTime), timecalc.FormatDuration(rec.Overtime))
	}
	return fmt.Sprintf("Clocked out at %s. Short today: %s",
		clockText(rec.EndTime), timecalc.FormatDuration(-rec.Overtime))
}

// printRecords prints one line per record in the given order.
func printRecords(w io.Writer, records []model.DailyRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	fmt.Fprintf(w, "%-12s%-10s%-10s%-10s%s\n", "Date", "Start", "End", "Worked", "Overtime")
	for _, r := range records {
		fmt.Fprintf(w, "%-12s%-10s%-10s%-10s%s\n",
			r.Date, clockText(r.StartTime), clockText(r.EndTime), workedText(r), renderOvertime(r))
	}
}

// parseMonth parses a "YYYY-MM" flag value; empty means the month of now.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return t.Year(), t.Month(), nil
}
