package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db}
}

func (r *OrganizationRepository) Create(org *model.Organization) error {
	return r.db.Create(org).Error
}

func (r *OrganizationRepository) Update(org *model.Organization) error {
	return r.db.Save(org).Error
}

func (r *OrganizationRepository) Delete(id string) error {
	return r.db.Delete(&model.Organization{}, "id = ?", id).Error
}

func (r *OrganizationRepository) FindByID(id string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.First(&org, "id = ?", id).Error
	return &org, err
}

func (r *OrganizationRepository) List(page, pageSize int) ([]model.Organization, int64, error) {
	var orgs []model.Organization
	var total int64
	if err := r.db.Model(&model.Organization{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orgs).Error
	return orgs, total, err
}
