package cmd

import (
	"github.com/spf13/cobra"
)

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out for today and show the overtime",
	Args:  cobra.NoArgs,
	RunE:  runOut,
}

func runOut(cmd *cobra.Command, args []string) error {
	rec, err := current.ledger.ClockOut(now())
	if err != nil {
		return err
	}
	sink(cmd).Notify(clockOutMessage(rec))
	return nil
}
