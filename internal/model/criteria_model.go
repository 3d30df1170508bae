package model

import (
	"time"

	"github.com/google/uuid"
)

// CriteriaSet is a versioned collection of scoring criteria tied to a
// doc type. Only one version per doc type is active at a time; the
// repository enforces that on activation.
type CriteriaSet struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;index;not null" json:"organization_id"`
	DocTypeID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"doc_type_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Version        int            `gorm:"default:1" json:"version"`
	IsActive       bool           `gorm:"default:false" json:"is_active"`
	Items          []CriteriaItem `gorm:"foreignKey:CriteriaSetID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (s *CriteriaSet) TableName() string {
	return "criteria_sets"
}

type CriteriaItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CriteriaSetID uuid.UUID `gorm:"type:uuid;index;not null" json:"criteria_set_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Weight        float64   `gorm:"type:float;default:1" json:"weight"`
	MaxScore      float64   `gorm:"type:float;default:5" json:"max_score"`
	Position      int       `gorm:"default:0" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (i *CriteriaItem) TableName() string {
	return "criteria_items"
}
