package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	EvaluationStatusPending    = "pending"
	EvaluationStatusProcessing = "processing"
	EvaluationStatusCompleted  = "completed"
	EvaluationStatusFailed     = "failed"
)

// IsTerminalStatus reports whether an evaluation status will never
// change again. Pollers stop on terminal statuses.
func IsTerminalStatus(status string) bool {
	return status == EvaluationStatusCompleted || status == EvaluationStatusFailed
}

// Evaluation is one AI-assisted assessment of an uploaded document
// against a criteria set.
type Evaluation struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;index;not null" json:"organization_id"`
	ProjectID      *uuid.UUID      `gorm:"type:uuid;index" json:"project_id,omitempty"`
	DocTypeID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"doc_type_id"`
	CriteriaSetID  uuid.UUID       `gorm:"type:uuid;index;not null" json:"criteria_set_id"`
	DocumentName   string          `gorm:"type:varchar(255)" json:"document_name"`
	DocumentText   string          `gorm:"type:text" json:"-"`
	Embedding      pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	Status         string          `gorm:"type:varchar(50);index;default:'pending'" json:"status"`
	Progress       int             `gorm:"default:0" json:"progress"`
	Scores         string          `gorm:"type:jsonb;default:'{}'" json:"scores"`
	OverallScore   float64         `gorm:"type:float" json:"overall_score"`
	Summary        string          `gorm:"type:text" json:"summary"`
	SummaryHTML    string          `gorm:"type:text" json:"summary_html"`
	ErrorMessage   string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedBy      string          `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (e *Evaluation) TableName() string {
	return "evaluations"
}
