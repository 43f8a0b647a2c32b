package tui

import (
	"trellis/internal/api"
	"trellis/internal/model"
)

// — messages ————————————————————————————————————————————————————————————————

type ticketsMsg struct {
	tickets []model.Ticket
	err     error
}

type usersMsg struct {
	users []model.User
	err   error
}

type logsMsg struct {
	logs []model.LogEntry
	err  error
}

type meMsg struct {
	user model.User
	err  error
}

type statusChangedMsg struct {
	id     int
	status model.Status
	err    error
}

type ticketCreatedMsg struct {
	err error
}

type ticketDeletedMsg struct {
	id  int
	err error
}

type loginMsg struct {
	result api.LoginResult
	err    error
}

type signupMsg struct {
	err error
}

type profileSavedMsg struct {
	err error
}

type passwordSavedMsg struct {
	err error
}
