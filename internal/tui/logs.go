package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trellis/internal/cache"
	"trellis/internal/model"
)

// — activity logs ———————————————————————————————————————————————————————————

// logsUI wraps a viewport over the rendered activity lines. The log is
// server-owned and append-only; this screen only formats it.
type logsUI struct {
	viewport viewport.Model
	ready    bool
}

func (l *logsUI) resize(width, height int) {
	if !l.ready {
		l.viewport = viewport.New(width, height)
		l.ready = true
		return
	}
	l.viewport.Width = width
	l.viewport.Height = height
}

func (l *logsUI) setContent(logs []model.LogEntry) {
	if !l.ready {
		return
	}
	l.viewport.SetContent(formatLogs(logs))
}

func formatLogs(logs []model.LogEntry) string {
	if len(logs) == 0 {
		return dimStyle.Render("  No activity logs found.")
	}
	var b strings.Builder
	for _, entry := range logs {
		b.WriteString(formatLogLine(entry) + "\n")
	}
	return b.String()
}

func formatLogLine(entry model.LogEntry) string {
	line := "  " + boldStyle.Render(entry.Username) + " " + entry.Action
	if entry.TicketID != nil {
		line += " " + titleStyle.Render(ticketRef(*entry.TicketID))
	}
	line += dimStyle.Render("  " + entry.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"))
	return line
}

func (m Model) updateLogs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if next, cmd, handled := m.handleNav(keyMsg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewLogs() string {
	logs, loaded := cache.GetAs[[]model.LogEntry](m.cache, cache.Logs)
	if !loaded {
		return lipgloss.NewStyle().Padding(1, 2).Render("Loading activity…")
	}
	if !m.logs.ready {
		return formatLogs(logs)
	}
	return m.logs.viewport.View()
}
