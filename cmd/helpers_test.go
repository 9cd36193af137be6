package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/config"
	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/storage"
)

// useLedger installs an app backed by an in-memory store.
func useLedger(t *testing.T, records ...model.DailyRecord) (*ledger.Ledger, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore(records...)
	l := ledger.New(store, zerolog.Nop())
	current = &app{cfg: config.Default(), base: t.TempDir(), log: zerolog.Nop(), ledger: l}
	t.Cleanup(func() { current = nil })
	return l, store
}

// freezeNow pins the command clock.
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

// execute runs a command's RunE with its output captured.
func execute(c *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	c.SetOut(&buf)
	defer c.SetOut(nil)
	err := c.RunE(c, args)
	return buf.String(), err
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.Local)
}

func completed(day, startHour, startMin, endHour, endMin int, worked, overtime float64) model.DailyRecord {
	s, e := at(day, startHour, startMin), at(day, endHour, endMin)
	return model.DailyRecord{Date: model.DateKey(s), StartTime: &s, EndTime: &e, WorkDuration: worked, Overtime: overtime}
}
