package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trellis/internal/api"
	"trellis/internal/cache"
	"trellis/internal/model"
)

// — create issue form ———————————————————————————————————————————————————————

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldAssignee
	fieldCount
)

// createForm is the new-issue dialog. New tickets always start in
// Todo; the creator comes from the token server-side.
type createForm struct {
	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	priority    model.Priority
	assigneeIdx int // 0 = unassigned, otherwise index+1 into the users cache
	focus       int
	err         string
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "Issue title"
	title.CharLimit = 200
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Add description..."
	description.CharLimit = 500

	dueDate := textinput.New()
	dueDate.Placeholder = "YYYY-MM-DD (optional)"
	dueDate.CharLimit = 10

	return createForm{
		title:       title,
		description: description,
		dueDate:     dueDate,
		priority:    model.PriorityMedium,
	}
}

func (f createForm) focused() int { return f.focus }

// setFocus moves keyboard focus to the given field.
func (f createForm) setFocus(field int) (createForm, tea.Cmd) {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch field {
	case fieldTitle:
		return f, f.title.Focus()
	case fieldDescription:
		return f, f.description.Focus()
	case fieldDueDate:
		return f, f.dueDate.Focus()
	}
	return f, nil
}

// request validates the form and builds the POST body. The title gate
// lives here: an empty title refuses submission before any request is
// issued.
func (f createForm) request(users []model.User) (api.CreateTicketRequest, string) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return api.CreateTicketRequest{}, "title is required"
	}

	req := api.CreateTicketRequest{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
		Priority:    f.priority,
		Status:      model.StatusTodo,
	}

	if raw := strings.TrimSpace(f.dueDate.Value()); raw != "" {
		due, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return api.CreateTicketRequest{}, "due date must be YYYY-MM-DD"
		}
		req.DueDate = &due
	}

	if f.assigneeIdx > 0 && f.assigneeIdx <= len(users) {
		id := users[f.assigneeIdx-1].ID
		req.AssigneeID = &id
	}
	return req, ""
}

func (m Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		users, _ := cache.GetAs[[]model.User](m.cache, cache.Users)

		switch {
		case keyMatches(keyMsg, keys.Cancel):
			m.board.state = boardNormal
			m.board.form = newCreateForm()
			return m, nil

		case keyMatches(keyMsg, keys.Confirm):
			req, problem := m.board.form.request(users)
			if problem != "" {
				m.board.form.err = problem
				return m, nil
			}
			m.board.form.err = ""
			return m, createTicketCmd(m.api, req)

		case keyMsg.String() == "tab":
			var cmd tea.Cmd
			m.board.form, cmd = m.board.form.setFocus((m.board.form.focus + 1) % fieldCount)
			return m, cmd

		case keyMsg.String() == "shift+tab":
			var cmd tea.Cmd
			m.board.form, cmd = m.board.form.setFocus((m.board.form.focus + fieldCount - 1) % fieldCount)
			return m, cmd
		}

		// Left/right cycle the non-text fields.
		switch m.board.form.focus {
		case fieldPriority:
			if keyMsg.String() == "left" || keyMsg.String() == "right" || keyMsg.String() == " " {
				m.board.form.priority = nextPriorityValue(m.board.form.priority)
				return m, nil
			}
		case fieldAssignee:
			switch keyMsg.String() {
			case "right", " ":
				if m.board.form.assigneeIdx < len(users) {
					m.board.form.assigneeIdx++
				} else {
					m.board.form.assigneeIdx = 0
				}
				return m, nil
			case "left":
				if m.board.form.assigneeIdx > 0 {
					m.board.form.assigneeIdx--
				} else {
					m.board.form.assigneeIdx = len(users)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.board.form.focus {
	case fieldTitle:
		m.board.form.title, cmd = m.board.form.title.Update(msg)
	case fieldDescription:
		m.board.form.description, cmd = m.board.form.description.Update(msg)
	case fieldDueDate:
		m.board.form.dueDate, cmd = m.board.form.dueDate.Update(msg)
	}
	return m, cmd
}

func nextPriorityValue(p model.Priority) model.Priority {
	for i, known := range model.Priorities {
		if known == p {
			return model.Priorities[(i+1)%len(model.Priorities)]
		}
	}
	return model.PriorityMedium
}

func (m Model) renderCreateOver(base string) string {
	users, _ := cache.GetAs[[]model.User](m.cache, cache.Users)

	assignee := "Unassigned"
	if m.board.form.assigneeIdx > 0 && m.board.form.assigneeIdx <= len(users) {
		assignee = users[m.board.form.assigneeIdx-1].Username
	}

	row := func(field int, label, value string) string {
		rendered := labelStyle.Render(label)
		if m.board.form.focus == field {
			rendered = titleStyle.Render("▸ ") + rendered
		} else {
			rendered = "  " + rendered
		}
		return rendered + value + "\n"
	}

	var b strings.Builder
	b.WriteString(boldStyle.Render("New Issue") + "\n\n")
	b.WriteString(row(fieldTitle, "Title       ", m.board.form.title.View()))
	b.WriteString(row(fieldDescription, "Description ", m.board.form.description.View()))
	b.WriteString(row(fieldDueDate, "Due date    ", m.board.form.dueDate.View()))
	b.WriteString(row(fieldPriority, "Priority    ", priorityStyle(m.board.form.priority).Render(string(m.board.form.priority))))
	b.WriteString(row(fieldAssignee, "Assignee    ", assignee))
	if m.board.form.err != "" {
		b.WriteString("\n" + errStyle.Render(m.board.form.err) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("Starts in Todo · Tab fields · Enter create · Esc cancel"))

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}
