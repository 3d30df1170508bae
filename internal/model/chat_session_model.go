package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;index;not null" json:"organization_id"`
	UserID         string     `gorm:"type:varchar(255);index" json:"user_id"`
	Title          string     `gorm:"type:varchar(255)" json:"title"`
	ShareToken     *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"share_token,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (s *ChatSession) TableName() string {
	return "chat_sessions"
}

func (s *ChatSession) IsShared() bool {
	return s.ShareToken != nil
}
