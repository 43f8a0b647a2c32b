package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trellis/internal/api"
	"trellis/internal/model"
)

// — commands ————————————————————————————————————————————————————————————————
//
// Each command runs one API call off the update loop and delivers its
// result as a message. In-flight requests are not cancelled when the
// user navigates away; a stale result simply lands in the cache.

// callTimeout bounds a single request independent of the http.Client
// timeout, so a wedged connection cannot strand a screen forever.
const callTimeout = 30 * time.Second

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func fetchTickets(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		tickets, err := client.ListTickets(ctx)
		return ticketsMsg{tickets: tickets, err: err}
	}
}

func fetchUsers(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		users, err := client.ListUsers(ctx)
		return usersMsg{users: users, err: err}
	}
}

func fetchLogs(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		logs, err := client.ListLogs(ctx)
		return logsMsg{logs: logs, err: err}
	}
}

func fetchMe(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		user, err := client.CurrentUser(ctx)
		return meMsg{user: user, err: err}
	}
}

func updateStatusCmd(client *api.Client, id int, status model.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		err := client.UpdateTicketStatus(ctx, id, status)
		return statusChangedMsg{id: id, status: status, err: err}
	}
}

func createTicketCmd(client *api.Client, req api.CreateTicketRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return ticketCreatedMsg{err: client.CreateTicket(ctx, req)}
	}
}

func deleteTicketCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return ticketDeletedMsg{id: id, err: client.DeleteTicket(ctx, id)}
	}
}

func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		result, err := client.Login(ctx, username, password)
		return loginMsg{result: result, err: err}
	}
}

func signupCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return signupMsg{err: client.Signup(ctx, username, password)}
	}
}

func saveProfileCmd(client *api.Client, username, profilePhoto string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return profileSavedMsg{err: client.UpdateProfile(ctx, username, profilePhoto)}
	}
}

func savePasswordCmd(client *api.Client, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return passwordSavedMsg{err: client.UpdatePassword(ctx, password)}
	}
}
