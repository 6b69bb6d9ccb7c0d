package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"staff_reviews/internal/adapters/directory"
)

func TestClient_FindEmployee_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(503)
		default:
			if r.URL.Path != "/employees/7" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"employee_id": "7", "full_name": "Lee", "position": "Engineer"})
		}
	}))
	defer ts.Close()

	cl, err := directory.New(ts.URL, "", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	e, err := cl.FindEmployeeByID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e == nil || e.ID != 7 || e.Name != "Lee" || e.JobTitle != "Engineer" {
		t.Fatalf("unexpected employee: %+v", e)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_FindEmployee_NotFoundIsAbsent(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	cl, err := directory.New(ts.URL, "k", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	e, err := cl.FindEmployeeByID(context.Background(), 1)
	if err != nil || e != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", e, err)
	}
	// preferred and legacy paths both tried
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestClient_FindEmployee_LegacyEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employee/3" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": 3.0, "name": "Sam"}})
	}))
	defer ts.Close()

	cl, _ := directory.New(ts.URL+"/", "secret", 100)
	e, err := cl.FindEmployeeByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e == nil || e.ID != 3 || e.Name != "Sam" {
		t.Fatalf("unexpected employee: %+v", e)
	}
}

func TestClient_FindEmployee_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := directory.New(ts.URL, "bad", 100)
	_, err := cl.FindEmployeeByID(context.Background(), 1)
	if !errors.Is(err, directory.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_FindEmployee_FractionalIDRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7.9, "name": "Kim"}`))
	}))
	defer ts.Close()

	cl, _ := directory.New(ts.URL, "", 100)
	e, err := cl.FindEmployeeByID(context.Background(), 7)
	if err == nil || e != nil {
		t.Fatalf("expected payload error, got %+v, %v", e, err)
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := directory.New("", "", 1); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
