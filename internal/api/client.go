// Package api is the typed REST client for the Project Board backend.
// All business logic lives server-side; this package is transport,
// bearer auth, and schema validation at the decode boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token for outgoing requests. An
// empty token sends the request unauthenticated; the backend answers
// 401 and the caller decides what to do with it.
type TokenSource interface {
	Token() string
}

// Config holds everything needed to build a Client.
type Config struct {
	// BaseURL is the API root including the /api prefix, e.g.
	// "http://localhost:8080/api".
	BaseURL string

	// Tokens supplies the session bearer token. Required.
	Tokens TokenSource

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient; set a Timeout on it in production use.
	HTTPClient *http.Client

	// Logger receives request/response debug lines. Defaults to a
	// disabled logger.
	Logger zerolog.Logger
}

// Client issues requests against the backend REST resources.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient validates the configuration and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("api: Tokens is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     cfg.Tokens,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// envelope is the backend's uniform response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// do issues a request with an optional JSON body and returns the raw
// response body on 2xx. Non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: building request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", response.StatusCode).
		Msg("api call")

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, parseAPIError(response.StatusCode, raw)
	}
	return raw, nil
}

// get issues a GET and decodes the {data: ...} envelope into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decodeEnvelope(raw, out); err != nil {
		return fmt.Errorf("api: decoding %s: %w", path, err)
	}
	return nil
}

// decodeEnvelope unwraps {data: ...} into out.
func decodeEnvelope(raw []byte, out any) error {
	wrapper := envelope[json.RawMessage]{}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	return json.Unmarshal(wrapper.Data, out)
}
