package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) *ChatSessionRepository {
	return &ChatSessionRepository{db}
}

func (r *ChatSessionRepository) Create(session *model.ChatSession) error {
	return r.db.Create(session).Error
}

func (r *ChatSessionRepository) Delete(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.ChatSession{}, "id = ?", id).Error
}

func (r *ChatSessionRepository) FindByID(orgID uuid.UUID, id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.First(&session, "id = ? AND organization_id = ?", id, orgID).Error
	return &session, err
}

func (r *ChatSessionRepository) List(orgID uuid.UUID, userID string, page, pageSize int) ([]model.ChatSession, int64, error) {
	var sessions []model.ChatSession
	var total int64
	query := r.db.Model(&model.ChatSession{}).Where("organization_id = ?", orgID)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}

// Share assigns a share token if the session has none and returns the
// session. Sharing an already-shared session returns the existing
// token.
func (r *ChatSessionRepository) Share(orgID uuid.UUID, id string) (*model.ChatSession, error) {
	session, err := r.FindByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if session.ShareToken == nil {
		token := uuid.New()
		session.ShareToken = &token
		if err := r.db.Save(session).Error; err != nil {
			return nil, err
		}
	}
	return session, nil
}
