package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trellis/internal/board"
	"trellis/internal/model"
)

// — dashboard ———————————————————————————————————————————————————————————————

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if next, cmd, handled := m.handleNav(keyMsg); handled {
		return next, cmd
	}
	return m, nil
}

func (m Model) viewDashboard() string {
	tickets, loaded := m.snapshotTickets()
	if !loaded {
		return lipgloss.NewStyle().Padding(1, 2).Render("Loading stats…")
	}

	summary := board.Summarize(tickets)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Issues", fmt.Sprintf("%d", summary.Total), boldStyle),
		statCard("In Progress", fmt.Sprintf("%d", summary.ByStatus[model.StatusInProgress]), lowStyle),
		statCard("Completed", fmt.Sprintf("%d", summary.ByStatus[model.StatusDone]), okStyle),
		statCard("High Priority", fmt.Sprintf("%d", summary.ByPriority[model.PriorityHigh]), highStyle),
	)

	var b strings.Builder
	b.WriteString("\n" + cards + "\n\n")
	b.WriteString(boldStyle.Render("  Issues by Status") + "\n\n")
	b.WriteString(m.renderStatusChart(summary))
	b.WriteString("\n" + boldStyle.Render("  Priority Distribution") + "\n\n")
	b.WriteString(m.renderPriorityChart(summary))
	return b.String()
}

func statCard(label, value string, style lipgloss.Style) string {
	return statCardStyle.Render(
		labelStyle.Render(label) + "\n" + style.Bold(true).Render(value),
	)
}

// chartBar renders one horizontal bar scaled against the largest
// count, so the widest bar always fills the chart area.
func chartBar(label string, count, max, width int, style lipgloss.Style) string {
	barWidth := 0
	if max > 0 {
		barWidth = count * width / max
	}
	if count > 0 && barWidth == 0 {
		barWidth = 1
	}
	return fmt.Sprintf("  %-12s %s %d\n",
		label,
		style.Render(repeat("█", barWidth)),
		count,
	)
}

func (m Model) chartWidth() int {
	w := m.width - 24
	if w < 10 {
		w = 10
	}
	if w > 60 {
		w = 60
	}
	return w
}

func (m Model) renderStatusChart(summary board.Summary) string {
	max := 0
	for _, status := range model.Statuses {
		if summary.ByStatus[status] > max {
			max = summary.ByStatus[status]
		}
	}
	var b strings.Builder
	for _, status := range model.Statuses {
		b.WriteString(chartBar(string(status), summary.ByStatus[status], max, m.chartWidth(), statusColor(status)))
	}
	return b.String()
}

func (m Model) renderPriorityChart(summary board.Summary) string {
	max := 0
	for _, priority := range model.Priorities {
		if summary.ByPriority[priority] > max {
			max = summary.ByPriority[priority]
		}
	}
	var b strings.Builder
	for _, priority := range model.Priorities {
		b.WriteString(chartBar(string(priority), summary.ByPriority[priority], max, m.chartWidth(), priorityStyle(priority)))
	}
	return b.String()
}
