package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/report"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var (
	reportMonth  string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly worked hours and overtime",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Month to report (YYYY-MM); defaults to the current month")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// monthReport is the JSON shape of a monthly report. Hours are exact
// decimal strings emitted as JSON numbers.
type monthReport struct {
	Month         string              `json:"month"`
	Days          int                 `json:"days"`
	Completed     int                 `json:"completed"`
	WorkedHours   json.Number         `json:"workedHours"`
	OvertimeHours json.Number         `json:"overtimeHours"`
	Records       []model.DailyRecord `json:"records"`
}

func runReport(cmd *cobra.Command, args []string) error {
	year, month, err := parseMonth(reportMonth, now())
	if err != nil {
		return err
	}
	sum := current.ledger.Summary(year, month)
	records := report.Sorted(report.InMonth(current.ledger.Records(), year, month))
	w := cmd.OutOrStdout()

	switch reportFormat {
	case "csv":
		return writeReportCSV(w, sum, records)
	case "json":
		if records == nil {
			records = []model.DailyRecord{}
		}
		data, err := json.MarshalIndent(monthReport{
			Month:         sum.Label(),
			Days:          sum.Days,
			Completed:     sum.Completed,
			WorkedHours:   json.Number(sum.Worked.String()),
			OvertimeHours: json.Number(sum.Overtime.String()),
			Records:       records,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md", "":
		worked := sum.Worked.InexactFloat64()
		overtime := sum.Overtime.InexactFloat64()
		fmt.Fprintf(w, "Month %s\n", sum.Label())
		fmt.Fprintln(w, "--------------------------------")
		for _, r := range records {
			fmt.Fprintf(w, "%-12s%-10s%s\n", r.Date, workedText(r), renderOvertime(r))
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-20s%d (%d completed)\n", "Days", sum.Days, sum.Completed)
		fmt.Fprintf(w, "%-20s%s\n", "Worked", timecalc.FormatDuration(worked))
		fmt.Fprintf(w, "%-20s%s\n", "Overtime", renderHours(overtime))
	default:
		return fmt.Errorf("unknown --format %q (want md, csv or json)", reportFormat)
	}
	return nil
}

// writeReportCSV writes one row per record followed by a total row.
func writeReportCSV(w io.Writer, sum report.MonthSummary, records []model.DailyRecord) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"date", "work_hours", "overtime_hours"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			strconv.FormatFloat(r.WorkDuration, 'f', -1, 64),
			strconv.FormatFloat(r.Overtime, 'f', -1, 64),
		})
	}
	rows = append(rows, []string{"total " + sum.Label(), sum.Worked.String(), sum.Overtime.String()})
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
