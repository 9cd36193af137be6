package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/model"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as a dated JSON (or CSV) file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".", `Directory to write the export to, or "-" for stdout`)
}

func runExport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
		ext  string
	)
	switch exportFormat {
	case "json":
		data, err = current.ledger.Export()
		ext = ".json"
	case "csv":
		var b strings.Builder
		err = writeRecordsCSV(&b, current.ledger.Records())
		data = []byte(b.String())
		ext = ".csv"
	default:
		return fmt.Errorf("unknown --format %q (want json or csv)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		w := cmd.OutOrStdout()
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		if ext == ".json" {
			fmt.Fprintln(w)
		}
		return nil
	}

	name := strings.TrimSuffix(ledger.ExportFileName(now()), ".json") + ext
	path := filepath.Join(exportOutput, name)
	if err := os.MkdirAll(exportOutput, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	sink(cmd).Notify(fmt.Sprintf("Exported %d records to %s.", len(current.ledger.Records()), path))
	return nil
}

// writeRecordsCSV writes the records with the same columns as the JSON form.
func writeRecordsCSV(w io.Writer, records []model.DailyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "startTime", "endTime", "workDuration", "overtime"}); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date,
			csvTime(r.StartTime),
			csvTime(r.EndTime),
			strconv.FormatFloat(r.WorkDuration, 'f', -1, 64),
			strconv.FormatFloat(r.Overtime, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func csvTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
