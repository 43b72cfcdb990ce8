package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/count" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":7}`))
	}))
	defer server.Close()

	var resp struct {
		Count int `json:"count"`
	}
	if err := NewClient(server.URL).Get(t.Context(), "/users/count", &resp); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Count != 7 {
		t.Errorf("expected count 7, got %d", resp.Count)
	}
}

func TestClient_PostSendsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1"}`))
	}))
	defer server.Close()

	var resp struct {
		ID string `json:"id"`
	}
	err := NewClient(server.URL).Post(t.Context(), "/posts", map[string]string{"title": "t"}, &resp)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if resp.ID != "p1" {
		t.Errorf("expected id p1, got %s", resp.ID)
	}
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error", http.StatusNotFound, `{"error":"Post not found"}`, "server error (404): Post not found"},
		{"plain error", http.StatusInternalServerError, `boom`, "server error (500): boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).Delete(t.Context(), "/posts/x", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
			}
			var se *StatusError
			if !errors.As(err, &se) || se.Code != tt.status {
				t.Errorf("expected StatusError with code %d, got %v", tt.status, err)
			}
		})
	}
}

func TestClient_WaitReady(t *testing.T) {
	t.Run("succeeds once ready", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":"not ready"}`))
				return
			}
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		err := NewClient(server.URL).WaitReady(t.Context(), time.Second, 10*time.Millisecond)
		if err != nil {
			t.Fatalf("WaitReady() error = %v", err)
		}
		if calls.Load() != 3 {
			t.Errorf("expected 3 calls, got %d", calls.Load())
		}
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		err := NewClient(server.URL).WaitReady(t.Context(), 50*time.Millisecond, 10*time.Millisecond)
		var se *StatusError
		if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 StatusError, got %v", err)
		}
		if calls.Load() != 5 {
			t.Errorf("expected 5 attempts, got %d", calls.Load())
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		if err := NewClient(server.URL).WaitReady(ctx, time.Second, 10*time.Millisecond); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
