package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-tracker/internal/ledger"
	"github.com/Tiliavir/work-time-tracker/internal/model"
	"github.com/Tiliavir/work-time-tracker/internal/notify"
	"github.com/Tiliavir/work-time-tracker/internal/timecalc"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live view with a ticking clock and clock-in/clock-out keys",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4A90E2")).
			Padding(0, 1).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

const defaultDashboardWidth = 60

type tickMsg time.Time

// flashMsg asks for a repaint after the flash message changed.
type flashMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type dashboardModel struct {
	ledger *ledger.Ledger
	flash  *notify.Flash
	now    time.Time
	width  int
}

func newDashboardModel(l *ledger.Ledger, flash *notify.Flash) dashboardModel {
	return dashboardModel{ledger: l, flash: flash, now: now()}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "i":
			m.now = now()
			if rec, err := m.ledger.ClockIn(m.now); err != nil {
				m.flash.Notify(err.Error())
			} else {
				m.flash.Notify(fmt.Sprintf("Clocked in at %s.", clockText(rec.StartTime)))
			}
		case "o":
			m.now = now()
			if rec, err := m.ledger.ClockOut(m.now); err != nil {
				m.flash.Notify(err.Error())
			} else {
				m.flash.Notify(clockOutMessage(rec))
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case flashMsg:
		// View reads the flash directly.
	}
	return m, nil
}

func (m dashboardModel) View() string {
	width := m.width
	if width <= 0 {
		width = defaultDashboardWidth
	}

	header := headerStyle.Width(width).Render(
		fmt.Sprintf("Work Time Tracker - %s", m.now.Format("Jan 2, 2006 15:04:05")),
	)

	rec, _ := m.ledger.Today(m.now)
	state := m.ledger.State(m.now)
	running := noTime
	switch state {
	case ledger.ClockedIn:
		if elapsed, err := timecalc.Duration(*rec.StartTime, m.now); err == nil {
			running = timecalc.FormatDuration(elapsed)
		}
	case ledger.ClockedOut:
		running = workedText(rec)
	}

	today := boxStyle.Width(width - 2).Render(fmt.Sprintf(
		"TODAY %s (%s)\n\n"+
			"Start:    %s\n"+
			"End:      %s\n"+
			"Worked:   %s\n"+
			"Overtime: %s",
		model.DateKey(m.now), state,
		clockText(rec.StartTime),
		clockText(rec.EndTime),
		running,
		renderOvertime(rec),
	))

	total := m.ledger.MonthlyOvertimeTotal(m.now.Year(), m.now.Month())
	month := boxStyle.Width(width - 2).Render(fmt.Sprintf(
		"THIS MONTH %s\n\nOvertime: %s",
		m.now.Format("2006-01"), renderHours(total),
	))

	flash := ""
	if m.flash != nil {
		flash = flashStyle.Render(m.flash.Current())
	}

	footer := footerStyle.Width(width).Render("i: clock in • o: clock out • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, today, month, flash, footer)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	var p *tea.Program
	flash := notify.NewFlash(notify.DismissAfter, func(string) {
		// Send blocks until the event loop reads it, and Notify runs
		// inside Update.
		if p != nil {
			go p.Send(flashMsg{})
		}
	})
	defer flash.Stop()

	p = tea.NewProgram(newDashboardModel(current.ledger, flash), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
