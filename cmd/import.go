package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge records from a JSON export into the current records",
	Long: `Merge records from a JSON export. A record replaces the existing record
of the same date; other records are kept. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace all records with a JSON backup",
	Long: `Replace the whole record set with the records of a JSON backup.
Records not in the backup are removed. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	n, err := current.ledger.Import(data)
	if err != nil {
		return err
	}
	sink(cmd).Notify(fmt.Sprintf("Imported %d records.", n))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	n, err := current.ledger.Restore(data)
	if err != nil {
		return err
	}
	sink(cmd).Notify(fmt.Sprintf("Backup restored: %d records replace the previous data.", n))
	return nil
}

// readInput reads a whole file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
