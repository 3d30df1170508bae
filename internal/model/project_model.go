package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedBy      string    `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Derived per requesting user, never persisted.
	IsFavorited bool `gorm:"-" json:"is_favorited"`
}

func (p *Project) TableName() string {
	return "projects"
}

type ProjectFavorite struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    string    `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *ProjectFavorite) TableName() string {
	return "project_favorites"
}
