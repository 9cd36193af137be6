package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's record and this month's overtime",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	t := now()
	w := cmd.OutOrStdout()
	state := current.ledger.State(t)
	rec, _ := current.ledger.Today(t)

	fmt.Fprintf(w, "Today (%s): %s\n", model.DateKey(t), state)
	fmt.Fprintf(w, "  Start:    %s\n", clockText(rec.StartTime))
	fmt.Fprintf(w, "  End:      %s\n", clockText(rec.EndTime))
	switch state {
	case ledger.ClockedIn:
		if elapsed, err := timecalc.Duration(*rec.StartTime, t); err == nil {
			fmt.Fprintf(w, "  Elapsed:  %s\n", timecalc.FormatDuration(elapsed))
		}
	case ledger.ClockedOut:
		fmt.Fprintf(w, "  Worked:   %s\n", workedText(rec))
		fmt.Fprintf(w, "  Overtime: %s\n", renderOvertime(rec))
	}

	total := current.ledger.MonthlyOvertimeTotal(t.Year(), t.Month())
	fmt.Fprintf(w, "Overtime this month (%s): %s\n", t.Format("2006-01"), renderHours(total))
	return nil
}
