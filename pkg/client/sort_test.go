package client

import (
	"testing"
	"time"
)

func sampleEvaluations() []Evaluation {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []Evaluation{
		{ID: "e1", DocumentName: "charter.pdf", Status: "completed", OverallScore: 72.5, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "e2", DocumentName: "audit.pdf", Status: "failed", OverallScore: 0, CreatedAt: base},
		{ID: "e3", DocumentName: "budget.pdf", Status: "completed", OverallScore: 91, CreatedAt: base.Add(time.Hour)},
	}
}

func idsOf(evaluations []Evaluation) []string {
	ids := make([]string, len(evaluations))
	for i, e := range evaluations {
		ids[i] = e.ID
	}
	return ids
}

func TestSortEvaluations(t *testing.T) {
	tests := []struct {
		name      string
		field     SortField
		ascending bool
		want      []string
	}{
		{"score ascending", SortByScore, true, []string{"e2", "e1", "e3"}},
		{"score descending", SortByScore, false, []string{"e3", "e1", "e2"}},
		{"document ascending", SortByDocument, true, []string{"e2", "e3", "e1"}},
		{"created_at ascending", SortByCreatedAt, true, []string{"e2", "e3", "e1"}},
		{"created_at descending", SortByCreatedAt, false, []string{"e1", "e3", "e2"}},
		{"status ascending", SortByStatus, true, []string{"e1", "e3", "e2"}},
		{"unknown field falls back to created_at", SortField("bogus"), true, []string{"e2", "e3", "e1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluations := sampleEvaluations()
			SortEvaluations(evaluations, tt.field, tt.ascending)
			got := idsOf(evaluations)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSortEvaluationsIsStable(t *testing.T) {
	evaluations := []Evaluation{
		{ID: "a", Status: "completed"},
		{ID: "b", Status: "completed"},
		{ID: "c", Status: "completed"},
	}
	SortEvaluations(evaluations, SortByStatus, true)
	got := idsOf(evaluations)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal elements reordered: %v", got)
		}
	}
}

func TestFilterEvaluationsByStatus(t *testing.T) {
	evaluations := sampleEvaluations()

	completed := FilterEvaluationsByStatus(evaluations, "completed")
	if len(completed) != 2 {
		t.Fatalf("completed count = %d, want 2", len(completed))
	}
	if completed[0].ID != "e1" || completed[1].ID != "e3" {
		t.Errorf("order not preserved: %v", idsOf(completed))
	}

	if got := FilterEvaluationsByStatus(evaluations, ""); len(got) != len(evaluations) {
		t.Errorf("empty status filtered to %d items, want %d", len(got), len(evaluations))
	}

	if got := FilterEvaluationsByStatus(evaluations, "pending"); len(got) != 0 {
		t.Errorf("pending count = %d, want 0", len(got))
	}
}
