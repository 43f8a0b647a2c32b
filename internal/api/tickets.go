package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trellis/internal/model"
)

// ListTickets fetches the full ticket collection. Every decoded ticket
// is validated so unknown statuses or priorities surface as a typed
// decode failure instead of rendering garbage columns.
func (c *Client) ListTickets(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := c.get(ctx, "/tickets/", &tickets); err != nil {
		return nil, err
	}
	for i := range tickets {
		if err := tickets[i].Validate(); err != nil {
			return nil, fmt.Errorf("api: decoding /tickets/: %w", err)
		}
	}
	return tickets, nil
}

// CreateTicketRequest is the POST /tickets/ body. The server assigns
// the id and records the creator from the token.
type CreateTicketRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	Status      model.Status   `json:"status"`
	DueDate     *time.Time     `json:"due_date"`
	AssigneeID  *int           `json:"assignee_id"`
}

// CreateTicket adds a ticket. The caller gates on a non-empty title
// before issuing the request.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/tickets/", req)
	return err
}

// UpdateTicketStatus moves a ticket to a new column.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int, status model.Status) error {
	body := struct {
		Status model.Status `json:"status"`
	}{Status: status}
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tickets/%d/status", id), body)
	return err
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tickets/%d", id), nil)
	return err
}
