package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
)

func testItems() []model.CriteriaItem {
	return []model.CriteriaItem{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Access Control", Weight: 2, MaxScore: 5},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Encryption", Weight: 1, MaxScore: 5},
	}
}

func gradeReply(scoreA, scoreB float64) string {
	return fmt.Sprintf(`{
		"criteria": {
			"11111111-1111-1111-1111-111111111111": {"score": %g, "status": "Compliant", "feedback": "good"},
			"22222222-2222-2222-2222-222222222222": {"score": %g, "status": "Partially Compliant", "feedback": "weak"}
		},
		"overall_summary": "## Summary\n\nSolid overall."
	}`, scoreA, scoreB)
}

func TestParseGradeResult(t *testing.T) {
	items := testItems()

	result, err := ParseGradeResult(gradeReply(5, 2.5), items)
	if err != nil {
		t.Fatalf("ParseGradeResult: %v", err)
	}

	// weighted: (2*(5/5) + 1*(2.5/5)) / 3 * 100 = 83.33
	if result.OverallScore != 83.33 {
		t.Errorf("OverallScore = %v, want 83.33", result.OverallScore)
	}
	access := result.ItemScores["11111111-1111-1111-1111-111111111111"]
	if access.Score != 5 || access.Status != "Compliant" || access.Feedback != "good" {
		t.Errorf("unexpected item score: %+v", access)
	}
	if result.Summary == "" {
		t.Error("summary not extracted")
	}
}

func TestParseGradeResultClampsScores(t *testing.T) {
	result, err := ParseGradeResult(gradeReply(99, -3), testItems())
	if err != nil {
		t.Fatalf("ParseGradeResult: %v", err)
	}
	if got := result.ItemScores["11111111-1111-1111-1111-111111111111"].Score; got != 5 {
		t.Errorf("score above max = %v, want clamped to 5", got)
	}
	if got := result.ItemScores["22222222-2222-2222-2222-222222222222"].Score; got != 0 {
		t.Errorf("negative score = %v, want clamped to 0", got)
	}
}

func TestParseGradeResultCodeFence(t *testing.T) {
	fenced := "```json\n" + gradeReply(4, 4) + "\n```"
	result, err := ParseGradeResult(fenced, testItems())
	if err != nil {
		t.Fatalf("ParseGradeResult with fence: %v", err)
	}
	if result.OverallScore != 80 {
		t.Errorf("OverallScore = %v, want 80", result.OverallScore)
	}
}

func TestParseGradeResultErrors(t *testing.T) {
	items := testItems()

	if _, err := ParseGradeResult("not json at all", items); err == nil {
		t.Error("expected error for invalid JSON")
	}

	missing := `{"criteria": {"11111111-1111-1111-1111-111111111111": {"score": 3}}, "overall_summary": "x"}`
	if _, err := ParseGradeResult(missing, items); err == nil {
		t.Error("expected error for missing criterion")
	}
}

func TestBuildGradingPrompt(t *testing.T) {
	docType := &model.DocType{Name: "IT Security Policy", Description: "corporate security policies"}
	items := testItems()

	prompt := BuildGradingPrompt(docType, items, []string{"Compliant", "Non-Compliant"}, "document body here")

	for _, want := range []string{
		"IT Security Policy",
		items[0].ID.String(),
		items[1].ID.String(),
		"Access Control",
		"Compliant, Non-Compliant",
		"STRICTLY in JSON",
		"document body here",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestScoresJSONRoundTrip(t *testing.T) {
	result, err := ParseGradeResult(gradeReply(5, 5), testItems())
	if err != nil {
		t.Fatalf("ParseGradeResult: %v", err)
	}
	raw, err := result.ScoresJSON()
	if err != nil {
		t.Fatalf("ScoresJSON: %v", err)
	}
	if !strings.Contains(raw, "Access Control") {
		t.Errorf("serialized scores missing item name: %s", raw)
	}
}
