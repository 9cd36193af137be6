package ledger_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/model"
)

const browserExport = `[
  {"date": "2024/1/15", "startTime": "2024-01-15T01:00:00.000Z",
   "endTime": "2024-01-15T11:30:00.000Z", "workDuration": 99, "overtime": 99},
  {"date": "2024/1/16", "startTime": "2024-01-16T01:00:00.000Z",
   "endTime": null, "workDuration": 0, "overtime": 0}
]`

func TestImportMerges(t *testing.T) {
	l, _ := newLedger(t)
	end := at(15, 18, 0)
	if _, _, err := l.Backfill("2024-01-15", at(15, 8, 0), &end); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Backfill("2024-01-10", at(10, 8, 0), nil); err != nil {
		t.Fatal(err)
	}

	n, err := l.Import([]byte(browserExport))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	records := l.Records()
	wantDates := []string{"2024-01-15", "2024-01-10", "2024-01-16"}
	if len(records) != len(wantDates) {
		t.Fatalf("records = %d, want %d", len(records), len(wantDates))
	}
	for i, d := range wantDates {
		if records[i].Date != d {
			t.Errorf("records[%d].Date = %q, want %q", i, records[i].Date, d)
		}
	}
	// Derived fields are recomputed rather than taken from the file.
	if records[0].WorkDuration != 10.5 || records[0].Overtime != 0.5 {
		t.Errorf("imported durations = %v/%v, want 10.5/0.5", records[0].WorkDuration, records[0].Overtime)
	}
}

func TestImportShowsLocalWallClock(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("CST", 8*3600)
	t.Cleanup(func() { time.Local = prev })

	l, _ := newLedger(t)
	if _, err := l.Import([]byte(browserExport)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	rec, ok := l.Record(time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local))
	if !ok {
		t.Fatal("no record for 2024-01-15")
	}
	if rec.StartTime.Location() != time.Local || rec.StartTime.Hour() != 9 {
		t.Errorf("StartTime = %v, want 09:00 local", rec.StartTime)
	}
	if rec.EndTime.Hour() != 19 || rec.EndTime.Minute() != 30 {
		t.Errorf("EndTime = %v, want 19:30 local", rec.EndTime)
	}
}

func TestRestoreReplaces(t *testing.T) {
	l, store := newLedger(t)
	if _, err := l.ClockIn(at(20, 9, 0)); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Restore([]byte(browserExport)); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	records := l.Records()
	if len(records) != 2 || records[0].Date != "2024-01-15" || records[1].Date != "2024-01-16" {
		t.Errorf("records after restore = %+v", records)
	}
	if len(store.Load()) != 2 {
		t.Error("restore not persisted")
	}

	if _, err := l.Restore([]byte(`[]`)); err != nil {
		t.Fatalf("Restore empty: %v", err)
	}
	if len(l.Records()) != 0 || len(store.Load()) != 0 {
		t.Error("restoring an empty backup did not empty the store")
	}
}

func TestImportParseErrorsLeaveLedgerUntouched(t *testing.T) {
	inputs := map[string]string{
		"malformed":    `[{"date": "2024-01-15",`,
		"object":       `{"date": "2024-01-15"}`,
		"null":         `null`,
		"bad date":     `[{"date": "someday"}]`,
		"bad range":    `[{"date": "2024-01-15", "startTime": "2024-01-15T10:00:00Z", "endTime": "2024-01-15T09:00:00Z"}]`,
		"end no start": `[{"date": "2024-01-15", "endTime": "2024-01-15T09:00:00Z"}]`,
	}
	for name, input := range inputs {
		l, store := newLedger(t)
		if _, err := l.ClockIn(at(20, 9, 0)); err != nil {
			t.Fatal(err)
		}
		saves := store.Saves

		for _, op := range []func([]byte) (int, error){l.Import, l.Restore} {
			_, err := op([]byte(input))
			var perr *ledger.ImportParseError
			if !errors.As(err, &perr) {
				t.Errorf("%s: err = %v, want *ImportParseError", name, err)
			}
		}
		if len(l.Records()) != 1 || store.Saves != saves {
			t.Errorf("%s: failed import changed the ledger", name)
		}
	}
}

func TestImportRangeErrorUnwraps(t *testing.T) {
	l, _ := newLedger(t)
	_, err := l.Import([]byte(`[{"date": "2024-01-15", "startTime": "2024-01-15T10:00:00Z", "endTime": "2024-01-15T10:00:00Z"}]`))
	if !errors.Is(err, ledger.ErrInvalidRange) {
		t.Errorf("err = %v, want wrapped ErrInvalidRange", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	l, _ := newLedger(t)
	if _, err := l.ClockIn(at(15, 9, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ClockOut(at(15, 19, 30)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Backfill("2024-01-14", at(14, 9, 0), nil); err != nil {
		t.Fatal(err)
	}

	data, err := l.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var decoded []model.DailyRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	other, _ := newLedger(t)
	if _, err := other.Restore(data); err != nil {
		t.Fatalf("Restore export: %v", err)
	}
	want, got := l.Records(), other.Records()
	if len(got) != len(want) {
		t.Fatalf("records = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Date != want[i].Date || !got[i].StartTime.Equal(*want[i].StartTime) ||
			got[i].WorkDuration != want[i].WorkDuration || got[i].Overtime != want[i].Overtime {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExportEmpty(t *testing.T) {
	l, _ := newLedger(t)
	data, err := l.Export()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("Export = %q, want %q", data, "[]")
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC)
	if got := ledger.ExportFileName(now); got != "work-time-records_2026-10-16.json" {
		t.Errorf("ExportFileName = %q", got)
	}
}
