package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// — auth screens ————————————————————————————————————————————————————————————

// authUI backs both the login and signup forms; which one renders is
// decided by the current screen.
type authUI struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	err      string
	note     string
	busy     bool
}

func newAuthUI() authUI {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return authUI{username: username, password: password}
}

func (a *authUI) focusUsername() {
	a.focus = 0
	a.username.Focus()
	a.password.Blur()
}

func (a *authUI) focusField(field int) tea.Cmd {
	a.focus = field
	if field == 0 {
		a.password.Blur()
		return a.username.Focus()
	}
	a.username.Blur()
	return a.password.Focus()
}

func (m Model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			return m, m.auth.focusField(1 - m.auth.focus)

		case "ctrl+s":
			// Toggle between sign-in and sign-up.
			m.auth.err = ""
			m.auth.note = ""
			if m.screen == screenLogin {
				m.screen = screenSignup
			} else {
				m.screen = screenLogin
			}
			return m, nil

		case "enter":
			if m.auth.busy {
				return m, nil
			}
			username := strings.TrimSpace(m.auth.username.Value())
			password := m.auth.password.Value()
			if username == "" || password == "" {
				m.auth.err = "username and password are required"
				return m, nil
			}
			m.auth.err = ""
			m.auth.busy = true
			if m.screen == screenSignup {
				return m, signupCmd(m.api, username, password)
			}
			return m, loginCmd(m.api, username, password)
		}
	}

	var cmd tea.Cmd
	if m.auth.focus == 0 {
		m.auth.username, cmd = m.auth.username.Update(msg)
	} else {
		m.auth.password, cmd = m.auth.password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewAuth() string {
	heading := "Sign In"
	blurb := "Enter your username and password to access your account"
	action := "Enter sign in"
	toggle := "Ctrl+S sign up instead"
	if m.screen == screenSignup {
		heading = "Create Account"
		blurb = "Enter a username and password to create your account"
		action = "Enter create account"
		toggle = "Ctrl+S sign in instead"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n")
	b.WriteString(dimStyle.Render(blurb) + "\n\n")
	b.WriteString(labelStyle.Render("Username ") + m.auth.username.View() + "\n")
	b.WriteString(labelStyle.Render("Password ") + m.auth.password.View() + "\n")
	if m.auth.err != "" {
		b.WriteString("\n" + errStyle.Render(m.auth.err) + "\n")
	}
	if m.auth.note != "" {
		b.WriteString("\n" + okStyle.Render(m.auth.note) + "\n")
	}
	if m.auth.busy {
		b.WriteString("\n" + dimStyle.Render("Signing in…") + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(action+" · Tab switch field · "+toggle))

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
