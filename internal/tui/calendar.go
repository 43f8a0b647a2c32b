package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"trellis/internal/board"
	"trellis/internal/model"
)

// — calendar ————————————————————————————————————————————————————————————————

// calendarUI tracks only which month is on screen; the tickets come
// from the shared cache.
type calendarUI struct {
	year  int
	month time.Month
}

func (c calendarUI) shift(months int) calendarUI {
	t := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, months, 0)
	return calendarUI{year: t.Year(), month: t.Month()}
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if next, cmd, handled := m.handleNav(keyMsg); handled {
		return next, cmd
	}
	switch {
	case keyMatches(keyMsg, keys.PrevMonth):
		m.calendar = m.calendar.shift(-1)
	case keyMatches(keyMsg, keys.NextMonth):
		m.calendar = m.calendar.shift(1)
	}
	return m, nil
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m Model) viewCalendar() string {
	tickets, loaded := m.snapshotTickets()
	if !loaded {
		return lipgloss.NewStyle().Padding(1, 2).Render("Loading calendar…")
	}

	days := board.MonthGrid(m.calendar.year, m.calendar.month)
	cellWidth := m.width/7 - 1
	if cellWidth < 10 {
		cellWidth = 10
	}

	var b strings.Builder
	b.WriteString("  " + boldStyle.Render(fmt.Sprintf("%s %d", m.calendar.month, m.calendar.year)) +
		dimStyle.Render("   h/l to change month") + "\n\n")

	var header []string
	for _, name := range weekdayNames {
		header = append(header, columnHeadStyle.Width(cellWidth).Align(lipgloss.Center).Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	today := time.Now()
	for week := 0; week < len(days)/7; week++ {
		var cells []string
		for i := 0; i < 7; i++ {
			day := days[week*7+i]
			cells = append(cells, m.renderDayCell(day, today, tickets, cellWidth))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}

// renderDayCell draws one calendar day: the day number (today gets
// the highlight) and up to two due tickets colored by priority.
func (m Model) renderDayCell(day, today time.Time, tickets []model.Ticket, width int) string {
	inMonth := day.Month() == m.calendar.month

	number := fmt.Sprintf("%2d", day.Day())
	switch {
	case sameDay(day, today):
		number = todayStyle.Render(number)
	case !inMonth:
		number = dimStyle.Render(number)
	}

	lines := []string{number}
	due := board.DueOn(tickets, day)
	shown := due
	if len(shown) > 2 {
		shown = shown[:2]
	}
	for _, t := range shown {
		lines = append(lines, priorityStyle(t.Priority).Render(ansi.Truncate(t.Title, width-1, "…")))
	}
	if extra := len(due) - len(shown); extra > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("+%d more", extra)))
	}

	cell := lipgloss.NewStyle().Width(width).Height(4).Padding(0, 1)
	if !inMonth {
		cell = cell.Faint(true)
	}
	return cell.Render(strings.Join(lines, "\n"))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
