// Package tui is the terminal front end: one bubbletea program whose
// screens render the cached server snapshots and translate key
// presses into REST mutations. Data flows one way (cache to screen);
// mutations invalidate the cache and trigger a refetch.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"trellis/internal/api"
	"trellis/internal/cache"
	"trellis/internal/model"
	"trellis/internal/session"
)

// — screens —————————————————————————————————————————————————————————————————

type screen int

const (
	screenLogin screen = iota
	screenSignup
	screenBoard
	screenCalendar
	screenDashboard
	screenLogs
	screenProfile
)

func (s screen) title() string {
	switch s {
	case screenLogin:
		return "Sign In"
	case screenSignup:
		return "Create Account"
	case screenBoard:
		return "Project Board"
	case screenCalendar:
		return "Calendar"
	case screenDashboard:
		return "Analytics"
	case screenLogs:
		return "Activity"
	case screenProfile:
		return "Profile"
	}
	return ""
}

// gate is the session gate: protected screens require a stored token,
// public ones never do. Token presence is the only check; validity is
// the backend's call and surfaces as a 401 on the next request.
func gate(target screen, authenticated bool) screen {
	switch target {
	case screenLogin, screenSignup:
		return target
	}
	if !authenticated {
		return screenLogin
	}
	return target
}

// — model ———————————————————————————————————————————————————————————————————

// Options wires the app model to its collaborators.
type Options struct {
	API      *api.Client
	Sessions *session.Store
	Cache    *cache.Store
	Logger   zerolog.Logger
}

type Model struct {
	api      *api.Client
	sessions *session.Store
	cache    *cache.Store
	logger   zerolog.Logger

	width  int
	height int
	screen screen

	// alert is the status-bar line for mutation failures, the
	// terminal stand-in for the browser's blocking alert.
	alert string

	board    boardUI
	auth     authUI
	calendar calendarUI
	profile  profileUI
	logs     logsUI

	notifOpen bool
}

func New(opts Options) Model {
	now := time.Now()
	m := Model{
		api:      opts.API,
		sessions: opts.Sessions,
		cache:    opts.Cache,
		logger:   opts.Logger,
		board:    newBoardUI(),
		auth:     newAuthUI(),
		calendar: calendarUI{year: now.Year(), month: now.Month()},
		profile:  newProfileUI(),
	}
	m.screen = gate(screenBoard, m.sessions.Authenticated())
	if m.screen == screenLogin {
		m.auth.focusUsername()
	}
	return m
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	if m.screen == screenBoard {
		return tea.Batch(fetchTickets(m.api), fetchMe(m.api))
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logs.resize(msg.Width, m.bodyHeight())
		return m, nil

	case ticketsMsg:
		if msg.err != nil {
			// A failed query leaves the screen loading; the error
			// goes to the log, and a 401 drops the session.
			return m.handleQueryError("tickets", msg.err)
		}
		m.cache.Put(cache.Tickets, msg.tickets)
		m.board = m.board.clampCursor(m.visibleTickets())
		return m, nil

	case usersMsg:
		if msg.err != nil {
			return m.handleQueryError("users", msg.err)
		}
		m.cache.Put(cache.Users, msg.users)
		return m, nil

	case logsMsg:
		if msg.err != nil {
			return m.handleQueryError("logs", msg.err)
		}
		m.cache.Put(cache.Logs, msg.logs)
		m.logs.setContent(msg.logs)
		return m, nil

	case meMsg:
		if msg.err != nil {
			return m.handleQueryError("me", msg.err)
		}
		m.cache.Put(cache.Me, msg.user)
		if m.profile.username.Value() == "" {
			m.profile.username.SetValue(msg.user.Username)
		}
		return m, nil

	case statusChangedMsg:
		if msg.err != nil {
			// Explicitly surfaced, never silently swallowed: the
			// alert names the failure and the refetch snaps the
			// card back to its server-side column.
			m.alert = "Moving " + ticketRef(msg.id) + " failed: " + msg.err.Error()
			m.logger.Error().Err(msg.err).Int("ticket", msg.id).Msg("status update failed")
			return m.afterMutation(msg.err)
		}
		m.alert = ""
		m.cache.Invalidate(cache.Tickets)
		return m, fetchTickets(m.api)

	case ticketCreatedMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m.expireSession()
			}
			m.board.form.err = msg.err.Error()
			return m, nil
		}
		m.board.state = boardNormal
		m.board.form = newCreateForm()
		m.cache.Invalidate(cache.Tickets)
		return m, fetchTickets(m.api)

	case ticketDeletedMsg:
		if msg.err != nil {
			m.alert = "Deleting " + ticketRef(msg.id) + " failed: " + msg.err.Error()
			return m.afterMutation(msg.err)
		}
		m.alert = ""
		m.cache.Invalidate(cache.Tickets)
		return m, fetchTickets(m.api)

	case loginMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = "Login failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.sessions.Save(session.Session{Token: msg.result.Token, User: msg.result.User}); err != nil {
			m.auth.err = err.Error()
			return m, nil
		}
		m.auth = newAuthUI()
		m.screen = screenBoard
		return m, tea.Batch(fetchTickets(m.api), fetchMe(m.api))

	case signupMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = "Registration failed: " + msg.err.Error()
			return m, nil
		}
		m.auth = newAuthUI()
		m.auth.note = "Account created. Please sign in."
		m.auth.focusUsername()
		m.screen = screenLogin
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.profile.err = msg.err.Error()
			return m.afterMutation(msg.err)
		}
		m.profile.err = ""
		m.profile.note = "Profile updated"
		m.cache.Invalidate(cache.Me)
		return m, fetchMe(m.api)

	case passwordSavedMsg:
		if msg.err != nil {
			m.profile.err = msg.err.Error()
			return m.afterMutation(msg.err)
		}
		m.profile.err = ""
		m.profile.note = "Password updated"
		m.profile.password.Reset()
		m.profile.confirm.Reset()
		return m, nil
	}

	switch m.screen {
	case screenLogin, screenSignup:
		return m.updateAuth(msg)
	case screenBoard:
		return m.updateBoard(msg)
	case screenCalendar:
		return m.updateCalendar(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	case screenLogs:
		return m.updateLogs(msg)
	case screenProfile:
		return m.updateProfile(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var body string
	switch m.screen {
	case screenLogin, screenSignup:
		return m.viewAuth()
	case screenBoard:
		body = m.viewBoard()
	case screenCalendar:
		body = m.viewCalendar()
	case screenDashboard:
		body = m.viewDashboard()
	case screenLogs:
		body = m.viewLogs()
	case screenProfile:
		body = m.viewProfile()
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewFooter(),
	)

	switch {
	case m.notifOpen:
		return m.renderNotificationsOver(base)
	case m.screen == screenBoard && m.board.state == boardCreate:
		return m.renderCreateOver(base)
	case m.screen == screenBoard && m.board.state == boardDeleteConfirm:
		return m.renderDeleteConfirmOver(base)
	case m.screen == screenBoard && m.board.state == boardMoveMenu:
		return m.renderMoveMenuOver(base)
	}
	return base
}

// — shared helpers ——————————————————————————————————————————————————————————

// switchScreen applies the gate and kicks off fetches for whatever the
// target screen reads, but only when its cache keys are stale.
func (m Model) switchScreen(target screen) (Model, tea.Cmd) {
	m.screen = gate(target, m.sessions.Authenticated())
	if m.screen == screenLogin {
		m.auth.focusUsername()
		return m, nil
	}

	var cmds []tea.Cmd
	switch m.screen {
	case screenBoard, screenCalendar, screenDashboard:
		if m.cache.Stale(cache.Tickets) {
			cmds = append(cmds, fetchTickets(m.api))
		}
	case screenLogs:
		if m.cache.Stale(cache.Logs) {
			cmds = append(cmds, fetchLogs(m.api))
		}
	case screenProfile:
		if m.cache.Stale(cache.Me) {
			cmds = append(cmds, fetchMe(m.api))
		}
	}
	return m, tea.Batch(cmds...)
}

// handleNav processes keys shared by every protected screen. The
// handled flag tells the caller to stop.
func (m Model) handleNav(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	var next screen
	switch {
	case keyMatches(msg, keys.GoBoard):
		next = screenBoard
	case keyMatches(msg, keys.GoCalendar):
		next = screenCalendar
	case keyMatches(msg, keys.GoDashboard):
		next = screenDashboard
	case keyMatches(msg, keys.GoLogs):
		next = screenLogs
	case keyMatches(msg, keys.GoProfile):
		next = screenProfile
	case keyMatches(msg, keys.Refresh):
		model, cmd := m.refreshCurrent()
		return model, cmd, true
	case keyMatches(msg, keys.Quit):
		return m, tea.Quit, true
	default:
		return m, nil, false
	}
	model, cmd := m.switchScreen(next)
	return model, cmd, true
}

// refreshCurrent refetches whatever the current screen reads.
func (m Model) refreshCurrent() (Model, tea.Cmd) {
	switch m.screen {
	case screenBoard, screenCalendar, screenDashboard:
		m.cache.Invalidate(cache.Tickets)
		return m, fetchTickets(m.api)
	case screenLogs:
		m.cache.Invalidate(cache.Logs)
		return m, fetchLogs(m.api)
	case screenProfile:
		m.cache.Invalidate(cache.Me)
		return m, fetchMe(m.api)
	}
	return m, nil
}

// handleQueryError logs a failed fetch. The screen stays in its
// loading state; only a 401 changes anything visible, by expiring the
// session.
func (m Model) handleQueryError(resource string, err error) (Model, tea.Cmd) {
	m.logger.Error().Err(err).Str("resource", resource).Msg("query failed")
	if api.IsUnauthorized(err) {
		return m.expireSession()
	}
	return m, nil
}

// afterMutation handles the shared failure path of mutations: a 401
// expires the session, anything else was already surfaced by the
// caller.
func (m Model) afterMutation(err error) (Model, tea.Cmd) {
	if api.IsUnauthorized(err) {
		return m.expireSession()
	}
	// Resync so the board reflects the server after a failed write.
	m.cache.Invalidate(cache.Tickets)
	return m, fetchTickets(m.api)
}

// expireSession clears the stored token and drops to the login screen.
func (m Model) expireSession() (Model, tea.Cmd) {
	if err := m.sessions.Clear(); err != nil {
		m.logger.Error().Err(err).Msg("clearing session")
	}
	m.auth = newAuthUI()
	m.auth.note = "Session expired. Please sign in."
	m.auth.focusUsername()
	m.screen = screenLogin
	return m, nil
}

// logout is the user-initiated variant of expireSession.
func (m Model) logout() (Model, tea.Cmd) {
	if err := m.sessions.Clear(); err != nil {
		m.logger.Error().Err(err).Msg("clearing session")
	}
	m.auth = newAuthUI()
	m.auth.focusUsername()
	m.screen = screenLogin
	return m, nil
}

// snapshotTickets returns the cached ticket collection, or nil while
// the first fetch is outstanding.
func (m Model) snapshotTickets() ([]model.Ticket, bool) {
	return cache.GetAs[[]model.Ticket](m.cache, cache.Tickets)
}

// visibleTickets is the filtered projection the board renders.
func (m Model) visibleTickets() []model.Ticket {
	tickets, ok := m.snapshotTickets()
	if !ok {
		return nil
	}
	return m.board.filter.Apply(tickets)
}

// — chrome ——————————————————————————————————————————————————————————————————

func (m Model) viewHeader() string {
	tabs := []struct {
		s     screen
		label string
	}{
		{screenBoard, "1 Board"},
		{screenCalendar, "2 Calendar"},
		{screenDashboard, "3 Dashboard"},
		{screenLogs, "4 Logs"},
		{screenProfile, "5 Profile"},
	}

	parts := []string{titleStyle.Render(" " + m.screen.title() + " ")}
	for _, tab := range tabs {
		if tab.s == m.screen {
			parts = append(parts, activeTabStyle.Render(tab.label))
		} else {
			parts = append(parts, tabStyle.Render(tab.label))
		}
	}
	if sess := m.sessions.Current(); sess != nil {
		parts = append(parts, dimStyle.Render(" "+sess.User.Username))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) viewFooter() string {
	sep := dimStyle.Render(repeat("─", m.width))
	line := helpStyle.Render(m.helpText())
	if m.alert != "" {
		line = errStyle.PaddingLeft(2).Render(m.alert)
	}
	return sep + "\n" + line
}

func (m Model) helpText() string {
	switch m.screen {
	case screenBoard:
		switch m.board.state {
		case boardSearch:
			return "type to search   Enter apply   Esc clear"
		case boardCreate:
			return "Tab next field   Enter create   Esc cancel"
		case boardDeleteConfirm:
			return "y/Enter confirm   n/Esc cancel"
		case boardMoveMenu:
			return "↑/↓ choose   Enter move   Esc cancel"
		}
		if m.board.drag.Active {
			return "←/→ column   ↑/↓ card   space/Enter drop   Esc cancel"
		}
		return "↑/↓/←/→ navigate   space grab   / search   f filter   n new   m move   x delete   o activity   r refresh   q quit"
	case screenCalendar:
		return "h/l month   1-5 screens   r refresh   q quit"
	case screenLogs:
		return "↑/↓ scroll   1-5 screens   r refresh   q quit"
	case screenProfile:
		return "Tab next field   Enter apply   1-4 screens   q quit"
	}
	return "1-5 screens   r refresh   q quit"
}

// bodyHeight is the space left between header and footer.
func (m Model) bodyHeight() int {
	h := m.height - 4
	if h < 1 {
		return 1
	}
	return h
}
