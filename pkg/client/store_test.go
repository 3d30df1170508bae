package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// storeServer serves the project and status-option endpoints against
// fixed fixtures, optionally failing mutations with a 500.
func storeServer(t *testing.T, failMutations bool) *httptest.Server {
	t.Helper()
	projects := []Project{
		{ID: "p1", Name: "Alpha", IsFavorited: false},
		{ID: "p2", Name: "Beta", IsFavorited: true},
	}
	options := []StatusOption{
		{ID: "s1", Scope: "system", Label: "Compliant", Score: 100},
		{ID: "s2", Scope: "organization", Label: "Waived", Score: 0},
	}

	ok := func(w http.ResponseWriter, data any) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": data})
	}
	fail := func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "database unavailable"})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		ok(w, projects)
	})
	mux.HandleFunc("/projects/p1/favorite", func(w http.ResponseWriter, r *http.Request) {
		if failMutations {
			fail(w)
			return
		}
		ok(w, map[string]bool{"is_favorited": true})
	})
	mux.HandleFunc("/projects/p1", func(w http.ResponseWriter, r *http.Request) {
		if failMutations {
			fail(w)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		ok(w, Project{ID: "p1", Name: body["name"], Description: body["description"]})
	})
	mux.HandleFunc("/eval/status-options", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if failMutations {
				fail(w)
				return
			}
			var opt StatusOption
			_ = json.NewDecoder(r.Body).Decode(&opt)
			opt.ID = "s3"
			ok(w, opt)
			return
		}
		ok(w, options)
	})
	mux.HandleFunc("/eval/status-options/s2", func(w http.ResponseWriter, r *http.Request) {
		if failMutations {
			fail(w)
			return
		}
		ok(w, nil)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestStore(t *testing.T, failMutations bool) *Store {
	t.Helper()
	server := storeServer(t, failMutations)
	store := NewStore(New(server.URL, "token"))
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return store
}

func favoriteOf(t *testing.T, store *Store, projectID string) bool {
	t.Helper()
	for _, p := range store.Projects() {
		if p.ID == projectID {
			return p.IsFavorited
		}
	}
	t.Fatalf("project %s not in store", projectID)
	return false
}

func TestStoreToggleFavorite(t *testing.T) {
	store := newTestStore(t, false)

	if err := store.ToggleFavorite(context.Background(), "p1"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !favoriteOf(t, store, "p1") {
		t.Error("p1 not favorited after successful toggle")
	}
	if !favoriteOf(t, store, "p2") {
		t.Error("p2 favorite flag disturbed")
	}
}

func TestStoreToggleFavoriteRollsBackOnError(t *testing.T) {
	store := newTestStore(t, true)

	err := store.ToggleFavorite(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected error from failing server")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "database unavailable" {
		t.Errorf("message = %q, want server envelope message", apiErr.Message)
	}
	if favoriteOf(t, store, "p1") {
		t.Error("p1 favorite flag not rolled back after failed toggle")
	}
}

func TestStoreUpdateProjectRollsBackOnError(t *testing.T) {
	store := newTestStore(t, true)

	if err := store.UpdateProject(context.Background(), "p1", "Renamed", "new desc"); err == nil {
		t.Fatal("expected error from failing server")
	}
	for _, p := range store.Projects() {
		if p.ID == "p1" && p.Name != "Alpha" {
			t.Errorf("name = %q after rollback, want Alpha", p.Name)
		}
	}
}

func TestStoreUpdateProjectAppliesServerRow(t *testing.T) {
	store := newTestStore(t, false)

	if err := store.UpdateProject(context.Background(), "p1", "Renamed", "new desc"); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	for _, p := range store.Projects() {
		if p.ID == "p1" && p.Name != "Renamed" {
			t.Errorf("name = %q, want Renamed", p.Name)
		}
	}
}

func TestStoreDeleteStatusOptionRollsBackOnError(t *testing.T) {
	store := newTestStore(t, true)

	if err := store.DeleteStatusOption(context.Background(), "s2"); err == nil {
		t.Fatal("expected error from failing server")
	}
	if got := len(store.StatusOptions()); got != 2 {
		t.Errorf("option count = %d after rollback, want 2", got)
	}
}

func TestStoreDeleteStatusOption(t *testing.T) {
	store := newTestStore(t, false)

	if err := store.DeleteStatusOption(context.Background(), "s2"); err != nil {
		t.Fatalf("DeleteStatusOption: %v", err)
	}
	for _, opt := range store.StatusOptions() {
		if opt.ID == "s2" {
			t.Error("s2 still present after delete")
		}
	}
}

func TestStoreCreateStatusOptionReplacesPlaceholder(t *testing.T) {
	store := newTestStore(t, false)

	err := store.CreateStatusOption(context.Background(), StatusOption{Label: "Escalated", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("CreateStatusOption: %v", err)
	}
	options := store.StatusOptions()
	if len(options) != 3 {
		t.Fatalf("option count = %d, want 3", len(options))
	}
	last := options[len(options)-1]
	if last.ID != "s3" {
		t.Errorf("created ID = %q, want server-assigned s3", last.ID)
	}
}

func TestStoreCreateStatusOptionRemovesPlaceholderOnError(t *testing.T) {
	store := newTestStore(t, true)

	if err := store.CreateStatusOption(context.Background(), StatusOption{Label: "Escalated"}); err == nil {
		t.Fatal("expected error from failing server")
	}
	if got := len(store.StatusOptions()); got != 2 {
		t.Errorf("option count = %d after failed create, want 2", got)
	}
	for _, opt := range store.StatusOptions() {
		if opt.ID == "pending" {
			t.Error("placeholder row left behind after failed create")
		}
	}
}
