package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/msgraph"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var (
	outlookSyncFrom      string
	outlookSyncTo        string
	outlookSyncDate      string
	outlookSyncDryRun    bool
	outlookSyncOverwrite bool
	outlookSyncTZ        string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Backfill days without records from Outlook calendar events",
	Long: `Backfill days without records from your Outlook calendar. For each day the
earliest start and the latest end of busy events become the shift.
Cancelled, all-day, private and free events are ignored.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); defaults to the first of this month")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncOverwrite, "overwrite", false, "Replace days that already have a record")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (e.g. Europe/Berlin); overrides config")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange resolves the --date/--from/--to flags to an inclusive range.
func syncRange(date, fromFlag, toFlag string, t time.Time) (time.Time, time.Time, error) {
	if date != "" {
		d, err := parseDayFlag("--date", date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return timecalc.StartOfDay(d), timecalc.EndOfDay(d), nil
	}

	from, _ := timecalc.MonthRange(t)
	to := timecalc.EndOfDay(t)
	if fromFlag != "" {
		d, err := parseDayFlag("--from", fromFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	if toFlag != "" {
		d, err := parseDayFlag("--to", toFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = timecalc.EndOfDay(d)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", model.DateKey(to), model.DateKey(from))
	}
	return timecalc.StartOfDay(from), to, nil
}

func parseDayFlag(name, value string) (time.Time, error) {
	key, err := model.NormalizeDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return model.ParseDateKey(key)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from, to, err := syncRange(outlookSyncDate, outlookSyncFrom, outlookSyncTo, now())
	if err != nil {
		return err
	}

	timezone := current.cfg.Outlook.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}

	w := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(w, "Syncing Outlook events (%s → %s)%s...\n", model.DateKey(from), model.DateKey(to), dryTag)
	fmt.Fprintln(w)

	ctx := cmd.Context()
	oauthCfg := msgraph.OAuth2Config(current.cfg.Outlook.TenantID, current.cfg.Outlook.ClientID)
	cache := msgraph.NewTokenCache(current.base)

	tok, err := msgraph.Authenticate(ctx, oauthCfg, cache, w, current.log)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, tok, oauthCfg, cache, current.log)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	current.log.Debug().Int("events", len(events)).Msg("calendar events fetched")

	shifts, errs := msgraph.DeriveShifts(events, timezone)
	for _, e := range errs {
		fmt.Fprintf(w, "  ! %v\n", e)
	}

	result := msgraph.Sync(current.ledger, shifts, msgraph.SyncOptions{
		DryRun:    outlookSyncDryRun,
		Overwrite: outlookSyncOverwrite,
	}, w)
	result.Errors += len(errs)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d imported\n", result.Imported)
	fmt.Fprintf(w, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(w, "  %d updated\n", result.Updated)
	if result.Errors > 0 {
		return fmt.Errorf("%d days or events could not be synced", result.Errors)
	}
	return nil
}
