package model

import "time"

// User is an account that creates and gets assigned tickets.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
