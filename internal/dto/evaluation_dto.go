package dto

import (
	"encoding/json"
	"time"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
)

type EvaluationDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	DocTypeID     uuid.UUID       `json:"doc_type_id"`
	CriteriaSetID uuid.UUID       `json:"criteria_set_id"`
	DocumentName  string          `json:"document_name"`
	Status        string          `json:"status"`
	Progress      int             `json:"progress"`
	Scores        json.RawMessage `json:"scores"`
	OverallScore  float64         `json:"overall_score"`
	Summary       string          `json:"summary"`
	SummaryHTML   string          `json:"summary_html"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewEvaluationDTO(e *model.Evaluation) EvaluationDTO {
	scores := json.RawMessage(e.Scores)
	if len(scores) == 0 {
		scores = json.RawMessage("{}")
	}
	return EvaluationDTO{
		ID:            e.ID,
		ProjectID:     e.ProjectID,
		DocTypeID:     e.DocTypeID,
		CriteriaSetID: e.CriteriaSetID,
		DocumentName:  e.DocumentName,
		Status:        e.Status,
		Progress:      e.Progress,
		Scores:        scores,
		OverallScore:  e.OverallScore,
		Summary:       e.Summary,
		SummaryHTML:   e.SummaryHTML,
		ErrorMessage:  e.ErrorMessage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// EvaluationStatusDTO is the slim payload the polling endpoint serves.
type EvaluationStatusDTO struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	OverallScore float64   `json:"overall_score"`
	ErrorMessage string    `json:"error_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewEvaluationStatusDTO(e *model.Evaluation) EvaluationStatusDTO {
	return EvaluationStatusDTO{
		ID:           e.ID,
		Status:       e.Status,
		Progress:     e.Progress,
		OverallScore: e.OverallScore,
		ErrorMessage: e.ErrorMessage,
		UpdatedAt:    e.UpdatedAt,
	}
}
