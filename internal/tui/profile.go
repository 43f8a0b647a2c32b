package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trellis/internal/cache"
	"trellis/internal/model"
)

// — profile —————————————————————————————————————————————————————————————————

const (
	profileUsername = iota
	profilePassword
	profileConfirm
	profileLogout
	profileFieldCount
)

type profileUI struct {
	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int
	err      string
	note     string
}

func newProfileUI() profileUI {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "new password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword

	return profileUI{username: username, password: password, confirm: confirm}
}

func (p *profileUI) setFocus(field int) tea.Cmd {
	p.focus = field
	p.username.Blur()
	p.password.Blur()
	p.confirm.Blur()
	switch field {
	case profileUsername:
		return p.username.Focus()
	case profilePassword:
		return p.password.Focus()
	case profileConfirm:
		return p.confirm.Focus()
	}
	return nil
}

func (m Model) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Screen switching works only while no input is focused;
		// digits must remain typable in the username field.
		if m.profile.focus == profileLogout {
			if next, cmd, handled := m.handleNav(keyMsg); handled {
				return next, cmd
			}
		}

		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "tab", "down":
			return m, m.profile.setFocus((m.profile.focus + 1) % profileFieldCount)

		case "shift+tab", "up":
			return m, m.profile.setFocus((m.profile.focus + profileFieldCount - 1) % profileFieldCount)

		case "enter":
			return m.submitProfile()
		}
	}

	var cmd tea.Cmd
	switch m.profile.focus {
	case profileUsername:
		m.profile.username, cmd = m.profile.username.Update(msg)
	case profilePassword:
		m.profile.password, cmd = m.profile.password.Update(msg)
	case profileConfirm:
		m.profile.confirm, cmd = m.profile.confirm.Update(msg)
	}
	return m, cmd
}

// submitProfile applies whichever section has focus: the username
// save, the password change (with the confirm-mismatch gate), or
// logout.
func (m Model) submitProfile() (tea.Model, tea.Cmd) {
	m.profile.note = ""
	switch m.profile.focus {
	case profileUsername:
		username := strings.TrimSpace(m.profile.username.Value())
		if username == "" {
			m.profile.err = "username cannot be empty"
			return m, nil
		}
		m.profile.err = ""
		return m, saveProfileCmd(m.api, username, "")

	case profilePassword, profileConfirm:
		password := m.profile.password.Value()
		if password == "" {
			m.profile.err = "password cannot be empty"
			return m, nil
		}
		if password != m.profile.confirm.Value() {
			m.profile.err = "Passwords do not match"
			return m, nil
		}
		m.profile.err = ""
		return m, savePasswordCmd(m.api, password)

	case profileLogout:
		return m.logout()
	}
	return m, nil
}

func (m Model) viewProfile() string {
	me, loaded := cache.GetAs[model.User](m.cache, cache.Me)
	if !loaded {
		return lipgloss.NewStyle().Padding(1, 2).Render("Loading profile…")
	}

	initial := "U"
	if me.Username != "" {
		initial = strings.ToUpper(me.Username[:1])
	}

	row := func(field int, label, value string) string {
		marker := "  "
		if m.profile.focus == field {
			marker = titleStyle.Render("▸ ")
		}
		return marker + labelStyle.Render(label) + value + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("("+initial+")") + " " + boldStyle.Render(me.Username) + "\n\n")
	b.WriteString(boldStyle.Render("  Account") + "\n")
	b.WriteString(row(profileUsername, "Username ", m.profile.username.View()))
	b.WriteString("\n" + boldStyle.Render("  Change Password") + "\n")
	b.WriteString(row(profilePassword, "New      ", m.profile.password.View()))
	b.WriteString(row(profileConfirm, "Confirm  ", m.profile.confirm.View()))
	b.WriteString("\n")

	logout := "  Log out"
	if m.profile.focus == profileLogout {
		logout = titleStyle.Render("▸ ") + errStyle.Render("Log out")
	} else {
		logout = "  " + dimStyle.Render("Log out")
	}
	b.WriteString(logout + "\n")

	if m.profile.err != "" {
		b.WriteString("\n  " + errStyle.Render(m.profile.err) + "\n")
	}
	if m.profile.note != "" {
		b.WriteString("\n  " + okStyle.Render(m.profile.note) + "\n")
	}
	return b.String()
}
