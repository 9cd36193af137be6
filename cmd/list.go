package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/report"
)

var listMonth string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listMonth, "month", "", "Only show one month (YYYY-MM)")
}

func runList(cmd *cobra.Command, args []string) error {
	records := current.ledger.Records()
	if listMonth != "" {
		year, month, err := parseMonth(listMonth, now())
		if err != nil {
			return err
		}
		records = report.InMonth(records, year, month)
	}
	printRecords(cmd.OutOrStdout(), report.Sorted(records))
	return nil
}
