package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var (
	backfillStart string
	backfillEnd   string
)

var backfillCmd = &cobra.Command{
	Use:   "backfill <date>",
	Short: "Add or replace the record of a past day",
	Long: `Add or replace the record of a day outside the live clock-in flow.
The date is YYYY-MM-DD; --start and --end are wall-clock times (HH:MM or HH:MM:SS).`,
	Args: cobra.ExactArgs(1),
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillStart, "start", "", "Start time (HH:MM); required")
	backfillCmd.Flags().StringVar(&backfillEnd, "end", "", "End time (HH:MM); omit for a day without clock-out")
	_ = backfillCmd.MarkFlagRequired("start")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	key, err := model.NormalizeDate(args[0])
	if err != nil {
		return err
	}
	day, err := model.ParseDateKey(key)
	if err != nil {
		return err
	}

	start, err := timecalc.At(day, backfillStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	var end *time.Time
	if backfillEnd != "" {
		t, err := timecalc.At(day, backfillEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		end = &t
	}

	rec, replaced, err := current.ledger.Backfill(key, start, end)
	if err != nil {
		return err
	}
	if replaced {
		sink(cmd).Notify(fmt.Sprintf("Record for %s updated (%s).", rec.Date, workedText(rec)))
	} else {
		sink(cmd).Notify(fmt.Sprintf("Record for %s added (%s).", rec.Date, workedText(rec)))
	}
	return nil
}
