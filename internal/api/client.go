// Package api is the HTTP client for the FinBits dashboard API. The
// remote service owns habits, to-dos and habit completion logs, and is
// the only place streaks are computed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dith08/FinBits-sub000/internal/constants"
	"github.com/dith08/FinBits-sub000/internal/logger"
	"github.com/dith08/FinBits-sub000/internal/models"
)

var (
	// ErrUnauthorized is returned when the API rejects the token.
	ErrUnauthorized = errors.New("API token rejected, run 'finbits login'")
	// ErrNotFound is returned when the requested item does not exist remotely.
	ErrNotFound = errors.New("item not found")
)

// httpDoer lets tests inject a fake transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the FinBits API with bearer-token auth.
type Client struct {
	baseURL string
	token   string
	http    httpDoer
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		http:    &http.Client{Timeout: constants.RequestTimeout},
	}
}

// SetHTTPClient replaces the underlying transport, primarily for tests.
func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: constants.RequestTimeout}
		return
	}
	c.http = client
}

// errorEnvelope is the API's JSON error shape.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// habitLogRequest submits one completion-log entry for a calendar date.
type habitLogRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

type todoStatusRequest struct {
	Status models.TodoStatus `json:"status"`
}

// ListHabits fetches all habits for the current user.
func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.call(ctx, http.MethodGet, "/api/habits", nil, &habits); err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// ListTodos fetches all to-do items for the current user.
func (c *Client) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := c.call(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// SubmitHabitLog records a completed log entry for the given habit and
// calendar date. The server upserts on (habit, date), so redundant
// submissions for the same day are harmless.
func (c *Client) SubmitHabitLog(ctx context.Context, habitID int, day string) error {
	path := fmt.Sprintf("/api/habits/%d/logs", habitID)
	body := habitLogRequest{Date: day, Completed: true}
	if err := c.call(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("submit habit log: %w", err)
	}
	return nil
}

// GetStreak fetches the server-computed streak summary for a habit.
func (c *Client) GetStreak(ctx context.Context, habitID int) (models.Streak, error) {
	var streak models.Streak
	path := fmt.Sprintf("/api/habits/%d/streak", habitID)
	if err := c.call(ctx, http.MethodGet, path, nil, &streak); err != nil {
		return models.Streak{}, fmt.Errorf("get streak: %w", err)
	}
	return streak, nil
}

// UpdateTodoStatus sets a to-do's status field.
func (c *Client) UpdateTodoStatus(ctx context.Context, todoID int, status models.TodoStatus) error {
	path := fmt.Sprintf("/api/todos/%d/status", todoID)
	if err := c.call(ctx, http.MethodPatch, path, todoStatusRequest{Status: status}, nil); err != nil {
		return fmt.Errorf("update todo status: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("API request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		var envelope errorEnvelope
		msg := ""
		if err := json.Unmarshal(raw, &envelope); err == nil {
			msg = strings.TrimSpace(envelope.Error.Message)
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("API error: %s", msg)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
