package api

import (
	"context"
	"fmt"
	"net/http"

	"trellis/internal/model"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the token and user returned on successful login. The
// token is opaque to the client; only the backend interprets it.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	var result LoginResult
	if err := decodeEnvelope(raw, &result); err != nil {
		return LoginResult{}, fmt.Errorf("api: decoding /auth/login: %w", err)
	}
	return result, nil
}

// Signup registers a new account. The caller logs in separately.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{Username: username, Password: password})
	return err
}

// CurrentUser fetches the account behind the active token.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// UpdateProfile changes the username and profile photo.
func (c *Client) UpdateProfile(ctx context.Context, username, profilePhoto string) error {
	body := struct {
		Username     string `json:"username"`
		ProfilePhoto string `json:"profile_photo"`
	}{Username: username, ProfilePhoto: profilePhoto}
	_, err := c.do(ctx, http.MethodPut, "/profile/", body)
	return err
}

// UpdatePassword sets a new password for the current account.
func (c *Client) UpdatePassword(ctx context.Context, password string) error {
	body := struct {
		Password string `json:"password"`
	}{Password: password}
	_, err := c.do(ctx, http.MethodPut, "/profile/password", body)
	return err
}
