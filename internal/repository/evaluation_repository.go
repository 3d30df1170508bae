package repository

import (
	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluationListParams carries the list endpoint's sort and filter
// knobs. Zero values mean "no filter, newest first".
type EvaluationListParams struct {
	Status    string
	DocTypeID string
	ProjectID string
	SortField string // "score", "status" or "created_at"
	SortOrder string // "asc" or "desc"
	Page      int
	PageSize  int
}

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db}
}

func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.db.Create(evaluation).Error
}

func (r *EvaluationRepository) Update(evaluation *model.Evaluation) error {
	return r.db.Save(evaluation).Error
}

func (r *EvaluationRepository) Delete(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.Evaluation{}, "id = ?", id).Error
}

func (r *EvaluationRepository) FindByID(orgID uuid.UUID, id string) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.db.First(&evaluation, "id = ? AND organization_id = ?", id, orgID).Error
	return &evaluation, err
}

// UpdateProgress bumps only the status/progress columns so the grading
// goroutine never clobbers concurrent metadata edits.
func (r *EvaluationRepository) UpdateProgress(id uuid.UUID, status string, progress int) error {
	return r.db.Model(&model.Evaluation{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "progress": progress}).Error
}

func (r *EvaluationRepository) List(orgID uuid.UUID, params EvaluationListParams) ([]model.Evaluation, int64, error) {
	query := r.db.Model(&model.Evaluation{}).Where("organization_id = ?", orgID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.DocTypeID != "" {
		query = query.Where("doc_type_id = ?", params.DocTypeID)
	}
	if params.ProjectID != "" {
		query = query.Where("project_id = ?", params.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	direction := "DESC"
	if params.SortOrder == "asc" {
		direction = "ASC"
	}
	switch params.SortField {
	case "score":
		order = "overall_score " + direction
	case "status":
		order = "status " + direction
	case "created_at":
		order = "created_at " + direction
	}

	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var evaluations []model.Evaluation
	err := query.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&evaluations).Error
	return evaluations, total, err
}
