package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. The backend returns
// {"error": "..."} bodies; anything else is kept verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("api: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", err.StatusCode, err.Message)
}

func parseAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	message := ""
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			message = payload.Error
		} else {
			message = payload.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsUnauthorized reports whether err is a 401 from the backend, i.e.
// the token is missing, invalid, or expired.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}
