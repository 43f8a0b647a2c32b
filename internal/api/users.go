package api

import (
	"context"

	"trellis/internal/model"
)

// ListUsers fetches every account, for the assignee picker.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListLogs fetches the activity log, newest first.
func (c *Client) ListLogs(ctx context.Context) ([]model.LogEntry, error) {
	var logs []model.LogEntry
	if err := c.get(ctx, "/logs/", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
