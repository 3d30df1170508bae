package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
)

func completedEvaluation() *model.Evaluation {
	return &model.Evaluation{
		ID:           uuid.New(),
		DocumentName: "security-policy.pdf",
		Status:       model.EvaluationStatusCompleted,
		OverallScore: 83.33,
		Summary:      "Strong access controls; encryption policy needs work.",
		Scores: `{
			"11111111-1111-1111-1111-111111111111": {"name": "Access Control", "score": 5, "max_score": 5, "weight": 2, "status": "Compliant", "feedback": "good"},
			"22222222-2222-2222-2222-222222222222": {"name": "Encryption", "score": 2.5, "max_score": 5, "weight": 1, "status": "Partially Compliant", "feedback": "weak"}
		}`,
		UpdatedAt: time.Now(),
	}
}

func TestRenderRejectsIncomplete(t *testing.T) {
	e := completedEvaluation()
	e.Status = model.EvaluationStatusProcessing
	if _, err := Render(FormatPDF, e); err == nil {
		t.Error("expected error exporting a processing evaluation")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := Render("docx", completedEvaluation()); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := ContentType("docx"); err == nil {
		t.Error("expected content-type error for unsupported format")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := Render(FormatPDF, completedEvaluation())
	if err != nil {
		t.Fatalf("Render pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("pdf output missing %%PDF header")
	}
}

func TestRenderXLSX(t *testing.T) {
	data, err := Render(FormatXLSX, completedEvaluation())
	if err != nil {
		t.Fatalf("Render xlsx: %v", err)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("xlsx output missing zip header")
	}
}

func TestScoreRowsSorted(t *testing.T) {
	rows, err := scoreRows(completedEvaluation())
	if err != nil {
		t.Fatalf("scoreRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Name != "Access Control" || rows[1].Name != "Encryption" {
		t.Errorf("rows not sorted by name: %v, %v", rows[0].Name, rows[1].Name)
	}
}
