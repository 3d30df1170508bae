package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOptionScopeSystem       = "system"
	StatusOptionScopeOrganization = "organization"
)

// StatusOption is a configurable label/color/score used for categorical
// grading. System-scope rows are seeded at startup and read-only through
// the API; organization-scope rows are tenant-managed.
type StatusOption struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	Scope          string     `gorm:"type:varchar(20);not null;default:'organization'" json:"scope"`
	Label          string     `gorm:"type:varchar(100);not null" json:"label"`
	Color          string     `gorm:"type:varchar(20)" json:"color"`
	Score          float64    `gorm:"type:float" json:"score"`
	Position       int        `gorm:"default:0" json:"position"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (o *StatusOption) TableName() string {
	return "status_options"
}
