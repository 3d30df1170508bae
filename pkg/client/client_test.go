package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []Organization{}})
	}))
	defer server.Close()

	c := New(server.URL, "secret-token")
	if _, err := c.ListOrganizations(context.Background()); err != nil {
		t.Fatalf("ListOrganizations: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want Bearer secret-token", gotAuth)
	}
}

func TestClientDecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Projects retrieved successfully",
			"data": []Project{
				{ID: "p1", Name: "Alpha"},
				{ID: "p2", Name: "Beta", IsFavorited: true},
			},
		})
	}))
	defer server.Close()

	projects, err := New(server.URL, "t").ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}
	if projects[1].Name != "Beta" || !projects[1].IsFavorited {
		t.Errorf("second project = %+v", projects[1])
	}
}

func TestClientSurfacesEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Evaluation not found"})
	}))
	defer server.Close()

	_, err := New(server.URL, "t").GetEvaluation(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "Evaluation not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClientRejectsSuccessFalseOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "validation failed"})
	}))
	defer server.Close()

	_, err := New(server.URL, "t").ListProjects(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClientHandlesNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := New(server.URL, "t").ListProjects(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.StatusCode)
	}
}

func TestExportEvaluationReturnsRawBytes(t *testing.T) {
	payload := []byte("%PDF-1.4 fake body")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "pdf" {
			t.Errorf("format query = %q, want pdf", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	data, err := New(server.URL, "t").ExportEvaluation(context.Background(), "e1", "pdf")
	if err != nil {
		t.Fatalf("ExportEvaluation: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("body = %q, want raw payload", data)
	}
}

func TestExportEvaluationSurfacesEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "evaluation is not completed"})
	}))
	defer server.Close()

	_, err := New(server.URL, "t").ExportEvaluation(context.Background(), "e1", "xlsx")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "evaluation is not completed" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
