package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusOptionRepository struct {
	db *gorm.DB
}

func NewStatusOptionRepository(db *gorm.DB) *StatusOptionRepository {
	return &StatusOptionRepository{db}
}

func (r *StatusOptionRepository) Create(option *model.StatusOption) error {
	return r.db.Create(option).Error
}

func (r *StatusOptionRepository) Update(option *model.StatusOption) error {
	return r.db.Save(option).Error
}

func (r *StatusOptionRepository) Delete(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ? AND scope = ?", orgID, model.StatusOptionScopeOrganization).
		Delete(&model.StatusOption{}, "id = ?", id).Error
}

// FindByID resolves either a system-scope option or one belonging to
// the organization.
func (r *StatusOptionRepository) FindByID(orgID uuid.UUID, id string) (*model.StatusOption, error) {
	var option model.StatusOption
	err := r.db.Where("id = ? AND (scope = ? OR organization_id = ?)",
		id, model.StatusOptionScopeSystem, orgID).First(&option).Error
	return &option, err
}

// List returns system defaults followed by the organization's own
// options, ordered by position.
func (r *StatusOptionRepository) List(orgID uuid.UUID) ([]model.StatusOption, error) {
	var options []model.StatusOption
	err := r.db.Where("scope = ? OR organization_id = ?", model.StatusOptionScopeSystem, orgID).
		Order("scope DESC, position ASC").
		Find(&options).Error
	return options, err
}
