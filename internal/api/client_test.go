package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dith08/FinBits-sub000/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestListHabits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/habits" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		json.NewEncoder(w).Encode([]models.Habit{
			{ID: 3, Name: "Morning run", Frequency: "daily"},
		})
	})

	habits, err := client.ListHabits(context.Background())
	if err != nil {
		t.Fatalf("ListHabits() failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != 3 || habits[0].Name != "Morning run" {
		t.Errorf("ListHabits() = %+v, want habit 3", habits)
	}
}

func TestSubmitHabitLog(t *testing.T) {
	var gotBody habitLogRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/habits/3/logs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := client.SubmitHabitLog(context.Background(), 3, "2024-03-01"); err != nil {
		t.Fatalf("SubmitHabitLog() failed: %v", err)
	}
	if gotBody.Date != "2024-03-01" || !gotBody.Completed {
		t.Errorf("body = %+v, want date 2024-03-01 completed", gotBody)
	}
}

func TestUpdateTodoStatus(t *testing.T) {
	var gotBody todoStatusRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/todos/9/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.UpdateTodoStatus(context.Background(), 9, models.StatusPending); err != nil {
		t.Fatalf("UpdateTodoStatus() failed: %v", err)
	}
	if gotBody.Status != models.StatusPending {
		t.Errorf("status = %q, want Pending", gotBody.Status)
	}
}

func TestGetStreak(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/habits/3/streak" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Streak{
			HabitID: 3, Current: 12, StartDate: "2024-02-18",
			ActiveHabits: 4, Message: "On fire!",
		})
	})

	streak, err := client.GetStreak(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetStreak() failed: %v", err)
	}
	if streak.Current != 12 || streak.Message != "On fire!" {
		t.Errorf("GetStreak() = %+v", streak)
	}
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListHabits(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("ListHabits() error = %v, want ErrUnauthorized", err)
	}
}

func TestErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error": {"message": "date is in the future"}}`)
	})

	err := client.SubmitHabitLog(context.Background(), 3, "2999-01-01")
	if err == nil {
		t.Fatal("SubmitHabitLog() should fail on 422")
	}
	if want := "date is in the future"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
}

func TestNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetStreak(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetStreak() error = %v, want ErrNotFound", err)
	}
}
