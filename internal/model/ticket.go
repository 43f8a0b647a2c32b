package model

import (
	"fmt"
	"time"
)

// Status is one of the four fixed board columns a ticket lives in.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the board columns in display order.
var Statuses = [4]Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	for _, known := range Statuses {
		if Status(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}

// Priority is the ticket's urgency level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists priorities from least to most urgent.
var Priorities = [3]Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority validates a wire priority string.
func ParsePriority(s string) (Priority, error) {
	for _, known := range Priorities {
		if Priority(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown ticket priority %q", s)
}

// Ticket is a unit of work on the board. Ids are server-assigned; the
// client never creates tickets locally.
type Ticket struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	CreatorID        int        `json:"creator_id"`
	CreatorUsername  string     `json:"creator_username"`
	AssigneeID       *int       `json:"assignee_id,omitempty"`
	AssigneeUsername *string    `json:"assignee_username,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Validate checks the enum fields decoded from the wire.
func (t *Ticket) Validate() error {
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return fmt.Errorf("ticket %d: %w", t.ID, err)
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return fmt.Errorf("ticket %d: %w", t.ID, err)
	}
	return nil
}

// Ref renders the ticket's display reference, e.g. "ISS-42".
func (t *Ticket) Ref() string {
	return fmt.Sprintf("ISS-%d", t.ID)
}

// Assignee returns the assignee username, or "Unassigned".
func (t *Ticket) Assignee() string {
	if t.AssigneeID != nil && t.AssigneeUsername != nil {
		return *t.AssigneeUsername
	}
	return "Unassigned"
}
