package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CriteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) *CriteriaRepository {
	return &CriteriaRepository{db}
}

func (r *CriteriaRepository) CreateSet(set *model.CriteriaSet) error {
	return r.db.Create(set).Error
}

// UpdateSet saves the set and, when it is being activated, deactivates
// every other version for the same doc type in the same transaction.
func (r *CriteriaRepository) UpdateSet(set *model.CriteriaSet) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if set.IsActive {
			err := tx.Model(&model.CriteriaSet{}).
				Where("doc_type_id = ? AND id <> ?", set.DocTypeID, set.ID).
				Update("is_active", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(set).Error
	})
}

func (r *CriteriaRepository) DeleteSet(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.CriteriaSet{}, "id = ?", id).Error
}

func (r *CriteriaRepository) FindSetByID(orgID uuid.UUID, id string) (*model.CriteriaSet, error) {
	var set model.CriteriaSet
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&set, "id = ? AND organization_id = ?", id, orgID).Error
	return &set, err
}

func (r *CriteriaRepository) ListSets(orgID uuid.UUID, docTypeID string, page, pageSize int) ([]model.CriteriaSet, int64, error) {
	var sets []model.CriteriaSet
	var total int64
	query := r.db.Model(&model.CriteriaSet{}).Where("organization_id = ?", orgID)
	if docTypeID != "" {
		query = query.Where("doc_type_id = ?", docTypeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sets).Error
	return sets, total, err
}

func (r *CriteriaRepository) CreateItem(item *model.CriteriaItem) error {
	return r.db.Create(item).Error
}

func (r *CriteriaRepository) UpdateItem(item *model.CriteriaItem) error {
	return r.db.Save(item).Error
}

func (r *CriteriaRepository) DeleteItem(setID uuid.UUID, itemID string) error {
	return r.db.Where("criteria_set_id = ?", setID).Delete(&model.CriteriaItem{}, "id = ?", itemID).Error
}

func (r *CriteriaRepository) FindItemByID(setID uuid.UUID, itemID string) (*model.CriteriaItem, error) {
	var item model.CriteriaItem
	err := r.db.First(&item, "id = ? AND criteria_set_id = ?", itemID, setID).Error
	return &item, err
}
