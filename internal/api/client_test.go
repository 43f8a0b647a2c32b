package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"trellis/internal/model"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// recordedRequest captures what the handler saw for later assertions.
type recordedRequest struct {
	method string
	path   string
	auth   string
	body   []byte
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) (*Client, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.auth = r.Header.Get("Authorization")
		recorded.body, _ = io.ReadAll(r.Body)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL + "/api",
		Tokens:  staticToken(token),
	})
	if err != nil {
		t.Fatal(err)
	}
	return client, recorded
}

func respondData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		t.Fatal(err)
	}
}

func TestNewClientRequiresConfig(t *testing.T) {
	if _, err := NewClient(Config{Tokens: staticToken("")}); err == nil {
		t.Error("missing BaseURL accepted")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost/api"}); err == nil {
		t.Error("missing Tokens accepted")
	}
}

func TestBearerHeader(t *testing.T) {
	client, recorded := newTestClient(t, "tok-abc", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, []model.Ticket{})
	})

	if _, err := client.ListTickets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if recorded.auth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", recorded.auth)
	}
}

func TestEmptyTokenSendsNoAuthHeader(t *testing.T) {
	client, recorded := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, []model.User{})
	})

	if _, err := client.ListUsers(context.Background()); err != nil {
		t.Fatal(err)
	}
	if recorded.auth != "" {
		t.Errorf("unauthenticated request carried Authorization = %q", recorded.auth)
	}
}

func TestListTickets(t *testing.T) {
	client, recorded := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, []map[string]any{
			{"id": 1, "title": "Fix login", "status": "Todo", "priority": "High"},
			{"id": 2, "title": "Ship it", "status": "Done", "priority": "Low"},
		})
	})

	tickets, err := client.ListTickets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if recorded.method != http.MethodGet || recorded.path != "/api/tickets/" {
		t.Errorf("request was %s %s", recorded.method, recorded.path)
	}
	if len(tickets) != 2 {
		t.Fatalf("got %d tickets", len(tickets))
	}
	if tickets[0].Title != "Fix login" || tickets[0].Status != model.StatusTodo {
		t.Errorf("ticket[0] = %+v", tickets[0])
	}
}

func TestListTicketsRejectsUnknownStatus(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, []map[string]any{
			{"id": 1, "title": "Odd", "status": "Archived", "priority": "Low"},
		})
	})

	if _, err := client.ListTickets(context.Background()); err == nil {
		t.Error("unknown status decoded without error")
	}
}

func TestUpdateTicketStatus(t *testing.T) {
	client, recorded := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, map[string]any{"id": 42})
	})

	err := client.UpdateTicketStatus(context.Background(), 42, model.StatusInProgress)
	if err != nil {
		t.Fatal(err)
	}
	if recorded.method != http.MethodPatch || recorded.path != "/api/tickets/42/status" {
		t.Errorf("request was %s %s", recorded.method, recorded.path)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(recorded.body, &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "In Progress" {
		t.Errorf("body status = %q", body.Status)
	}
}

func TestDeleteTicket(t *testing.T) {
	client, recorded := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := client.DeleteTicket(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if recorded.method != http.MethodDelete || recorded.path != "/api/tickets/7" {
		t.Errorf("request was %s %s", recorded.method, recorded.path)
	}
}

func TestCreateTicketBody(t *testing.T) {
	client, recorded := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateTicket(context.Background(), CreateTicketRequest{
		Title:    "New",
		Priority: model.PriorityMedium,
		Status:   model.StatusTodo,
	})
	if err != nil {
		t.Fatal(err)
	}
	if recorded.method != http.MethodPost || recorded.path != "/api/tickets/" {
		t.Errorf("request was %s %s", recorded.method, recorded.path)
	}
	var body map[string]any
	if err := json.Unmarshal(recorded.body, &body); err != nil {
		t.Fatal(err)
	}
	if body["title"] != "New" || body["status"] != "Todo" || body["priority"] != "Medium" {
		t.Errorf("body = %v", body)
	}
}

func TestLogin(t *testing.T) {
	client, recorded := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		respondData(t, w, map[string]any{
			"token": "tok-new",
			"user":  map[string]any{"id": 3, "username": "amir"},
		})
	})

	result, err := client.Login(context.Background(), "amir", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if recorded.path != "/api/auth/login" {
		t.Errorf("path = %q", recorded.path)
	}
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(recorded.body, &creds); err != nil {
		t.Fatal(err)
	}
	if creds.Username != "amir" || creds.Password != "hunter2" {
		t.Errorf("credentials = %+v", creds)
	}
	if result.Token != "tok-new" || result.User.Username != "amir" {
		t.Errorf("result = %+v", result)
	}
}

func TestErrorBodyBecomesAPIError(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"title is required"}`)
	})

	err := client.CreateTicket(context.Background(), CreateTicketRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "title is required" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestIsUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, "stale", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"invalid token"}`)
	})

	_, err := client.CurrentUser(context.Background())
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false", err)
	}
	if IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = true", err)
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Error("plain error reported unauthorized")
	}
}

func TestNonJSONErrorBodyKeptVerbatim(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down\n")
	})

	_, err := client.ListLogs(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T", err)
	}
	if apiErr.Message != "upstream down" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
