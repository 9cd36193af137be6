package cmd

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/notify"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDashboard(t *testing.T) (dashboardModel, *ledger.Ledger, *notify.Flash) {
	t.Helper()
	l, _ := useLedger(t)
	flash := notify.NewFlash(time.Hour, nil)
	t.Cleanup(flash.Stop)
	return newDashboardModel(l, flash), l, flash
}

func update(m dashboardModel, msg tea.Msg) (dashboardModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(dashboardModel), cmd
}

func TestDashboard_ClockKeys(t *testing.T) {
	freezeNow(t, at(15, 9, 0))
	m, l, flash := newTestDashboard(t)

	m, _ = update(m, key("i"))
	if l.State(at(15, 9, 0)) != ledger.ClockedIn {
		t.Fatal("i should clock in")
	}
	if got := flash.Current(); got != "Clocked in at 09:00:00." {
		t.Errorf("flash = %q", got)
	}

	m, _ = update(m, key("i"))
	if got := flash.Current(); got != ledger.ErrDuplicateClockIn.Error() {
		t.Errorf("flash = %q, want duplicate clock-in error", got)
	}

	freezeNow(t, at(15, 17, 0))
	m, _ = update(m, key("o"))
	if got := flash.Current(); got != "Clocked out at 17:00:00. Short today: 02:00:00" {
		t.Errorf("flash = %q", got)
	}

	view := m.View()
	for _, want := range []string{"TODAY 2024-01-15 (clocked out)", "Worked:   08:00:00", "-02:00:00", "Short today"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDashboard_Tick(t *testing.T) {
	freezeNow(t, at(15, 9, 0))
	m, l, _ := newTestDashboard(t)
	if _, err := l.ClockIn(at(15, 9, 0)); err != nil {
		t.Fatal(err)
	}

	m, cmd := update(m, tickMsg(at(15, 10, 30)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !m.now.Equal(at(15, 10, 30)) {
		t.Errorf("now = %v, want 10:30", m.now)
	}
	if view := m.View(); !strings.Contains(view, "Worked:   01:30:00") {
		t.Errorf("view should show the running shift:\n%s", view)
	}
}

func TestDashboard_Quit(t *testing.T) {
	m, _, _ := newTestDashboard(t)
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := update(m, k)
		if cmd == nil {
			t.Fatalf("%q: expected a quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected tea.QuitMsg", k.String())
		}
	}
}

func TestDashboard_Resize(t *testing.T) {
	m, _, _ := newTestDashboard(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 100 {
		t.Errorf("width = %d, want 100", m.width)
	}
}
