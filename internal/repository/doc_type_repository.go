package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocTypeRepository struct {
	db *gorm.DB
}

func NewDocTypeRepository(db *gorm.DB) *DocTypeRepository {
	return &DocTypeRepository{db}
}

func (r *DocTypeRepository) Create(docType *model.DocType) error {
	return r.db.Create(docType).Error
}

func (r *DocTypeRepository) Update(docType *model.DocType) error {
	return r.db.Save(docType).Error
}

func (r *DocTypeRepository) Delete(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.DocType{}, "id = ?", id).Error
}

func (r *DocTypeRepository) FindByID(orgID uuid.UUID, id string) (*model.DocType, error) {
	var docType model.DocType
	err := r.db.First(&docType, "id = ? AND organization_id = ?", id, orgID).Error
	return &docType, err
}

func (r *DocTypeRepository) List(orgID uuid.UUID, page, pageSize int) ([]model.DocType, int64, error) {
	var docTypes []model.DocType
	var total int64
	base := r.db.Model(&model.DocType{}).Where("organization_id = ?", orgID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docTypes).Error
	return docTypes, total, err
}

// NearestByEmbedding ranks the organization's active doc types by
// vector distance to the given embedding.
func (r *DocTypeRepository) NearestByEmbedding(orgID uuid.UUID, embedding pgvector.Vector, topK int) ([]model.DocType, error) {
	var docTypes []model.DocType
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM doc_types
        WHERE organization_id = ? AND is_active = true AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, orgID, embedding, topK).Scan(&docTypes).Error
	return docTypes, err
}
