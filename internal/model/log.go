package model

import "time"

// LogEntry is one row of the server-owned, append-only activity log.
// Read-only from the client.
type LogEntry struct {
	ID        int       `json:"id"`
	TicketID  *int      `json:"ticket_id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
