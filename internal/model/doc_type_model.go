package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocType is a category of document an evaluation can target,
// e.g. "IT Security Policy". The embedding backs semantic doc-type
// suggestion for uploaded documents.
type DocType struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;index;not null" json:"organization_id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	Embedding      pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (d *DocType) TableName() string {
	return "doc_types"
}
