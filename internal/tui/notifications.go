package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trellis/internal/cache"
	"trellis/internal/model"
)

// — notification center —————————————————————————————————————————————————————
//
// The bell popover from the board header: the most recent activity
// entries, read from the same logs cache the logs screen uses.

const notificationLimit = 8

func (m Model) updateNotifications(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case keyMatches(keyMsg, keys.Cancel), keyMatches(keyMsg, keys.Notifications):
		m.notifOpen = false
	case keyMatches(keyMsg, keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) renderNotificationsOver(base string) string {
	var b strings.Builder
	b.WriteString(boldStyle.Render("Recent Activity") + "\n\n")

	logs, loaded := cache.GetAs[[]model.LogEntry](m.cache, cache.Logs)
	switch {
	case !loaded:
		b.WriteString(dimStyle.Render("Loading…") + "\n")
	case len(logs) == 0:
		b.WriteString(dimStyle.Render("No notifications") + "\n")
	default:
		shown := logs
		if len(shown) > notificationLimit {
			shown = shown[:notificationLimit]
		}
		for _, entry := range shown {
			b.WriteString(formatLogLine(entry) + "\n")
		}
	}
	b.WriteString("\n" + dimStyle.Render("Esc/o close"))

	modal := modalStyle.Width(64).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}
