package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// statusServer serves the polling endpoint, walking through the given
// statuses one per request and repeating the last one.
func statusServer(t *testing.T, statuses []string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/eval/evaluations/", func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		idx := int(n) - 1
		if idx >= len(statuses) {
			idx = len(statuses) - 1
		}
		payload := map[string]any{
			"success": true,
			"message": "ok",
			"data": EvaluationStatus{
				ID:       "eval-1",
				Status:   statuses[idx],
				Progress: idx * 30,
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &hits
}

func TestPollerStopsOnTerminalStatus(t *testing.T) {
	server, _ := statusServer(t, []string{"processing", "processing", "completed"})
	c := New(server.URL, "token")
	poller := NewPoller(c, 10*time.Millisecond)

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})

	started := poller.Start(context.Background(), "eval-1", func(s EvaluationStatus) {
		mu.Lock()
		seen = append(seen, s.Status)
		mu.Unlock()
		if s.Terminal() {
			close(done)
		}
	})
	if !started {
		t.Fatal("Start returned false for a fresh ID")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reached terminal status")
	}
	poller.StopAll()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 3 {
		t.Fatalf("saw %d updates, want at least 3: %v", len(seen), seen)
	}
	if seen[len(seen)-1] != "completed" {
		t.Errorf("last status = %q, want completed", seen[len(seen)-1])
	}
	if poller.Watching("eval-1") {
		t.Error("poller still watching after terminal status")
	}
}

func TestPollerStartIsIdempotentPerID(t *testing.T) {
	server, _ := statusServer(t, []string{"processing"})
	c := New(server.URL, "token")
	poller := NewPoller(c, 10*time.Millisecond)
	defer poller.StopAll()

	if !poller.Start(context.Background(), "eval-1", nil) {
		t.Fatal("first Start returned false")
	}
	if poller.Start(context.Background(), "eval-1", nil) {
		t.Error("second Start for the same ID returned true")
	}
	if !poller.Start(context.Background(), "eval-2", nil) {
		t.Error("Start for a different ID returned false")
	}
}

func TestPollerStop(t *testing.T) {
	server, hits := statusServer(t, []string{"processing"})
	c := New(server.URL, "token")
	poller := NewPoller(c, 10*time.Millisecond)

	poller.Start(context.Background(), "eval-1", nil)
	time.Sleep(50 * time.Millisecond)
	poller.Stop("eval-1")
	poller.StopAll()

	if poller.Watching("eval-1") {
		t.Error("still watching after Stop")
	}
	before := hits.Load()
	time.Sleep(50 * time.Millisecond)
	if after := hits.Load(); after != before {
		t.Errorf("requests kept flowing after Stop: %d -> %d", before, after)
	}
}

func TestPollerSurvivesErrors(t *testing.T) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/eval/evaluations/", func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    EvaluationStatus{ID: "eval-1", Status: "completed", Progress: 100},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL, "token")
	poller := NewPoller(c, 10*time.Millisecond)
	done := make(chan EvaluationStatus, 1)

	poller.Start(context.Background(), "eval-1", func(s EvaluationStatus) {
		if s.Terminal() {
			done <- s
		}
	})

	select {
	case s := <-done:
		if s.Status != "completed" {
			t.Errorf("status = %q, want completed", s.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poller gave up after transient errors")
	}
	poller.StopAll()
}

func TestWaitForCompletion(t *testing.T) {
	server, _ := statusServer(t, []string{"processing", "failed"})
	c := New(server.URL, "token")
	poller := NewPoller(c, 10*time.Millisecond)

	status, err := poller.WaitForCompletion(context.Background(), "eval-1", nil)
	if err != nil {
		t.Fatalf("WaitForCompletion: %v", err)
	}
	if status.Status != "failed" {
		t.Errorf("status = %q, want failed", status.Status)
	}
}
