package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in for today",
	Args:  cobra.NoArgs,
	RunE:  runIn,
}

func runIn(cmd *cobra.Command, args []string) error {
	rec, err := current.ledger.ClockIn(now())
	if err != nil {
		return err
	}
	sink(cmd).Notify(fmt.Sprintf("Clocked in at %s.", clockText(rec.StartTime)))
	return nil
}
