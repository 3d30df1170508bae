package repository

import (
	"errors"
	"time"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) Update(project *model.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) Delete(orgID uuid.UUID, id string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) FindByID(orgID uuid.UUID, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, "id = ? AND organization_id = ?", id, orgID).Error
	return &project, err
}

// List returns the organization's projects with is_favorited annotated
// for the requesting user.
func (r *ProjectRepository) List(orgID uuid.UUID, userID string, page, pageSize int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64
	base := r.db.Model(&model.Project{}).Where("organization_id = ?", orgID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	if len(projects) > 0 && userID != "" {
		ids := make([]uuid.UUID, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		var favorites []model.ProjectFavorite
		if err := r.db.Where("user_id = ? AND project_id IN ?", userID, ids).Find(&favorites).Error; err != nil {
			return nil, 0, err
		}
		favorited := make(map[uuid.UUID]bool, len(favorites))
		for _, f := range favorites {
			favorited[f.ProjectID] = true
		}
		for i := range projects {
			projects[i].IsFavorited = favorited[projects[i].ID]
		}
	}
	return projects, total, nil
}

// ToggleFavorite flips the user's favorite mark on a project and
// reports the new state.
func (r *ProjectRepository) ToggleFavorite(orgID uuid.UUID, projectID, userID string) (bool, error) {
	project, err := r.FindByID(orgID, projectID)
	if err != nil {
		return false, err
	}

	var favorite model.ProjectFavorite
	err = r.db.First(&favorite, "project_id = ? AND user_id = ?", project.ID, userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		favorite = model.ProjectFavorite{
			ProjectID: project.ID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := r.db.Create(&favorite).Error; err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		if err := r.db.Delete(&favorite).Error; err != nil {
			return false, err
		}
		return false, nil
	}
}
