package repository

import (
	"context"

	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

// CreateProject inserts a project. Projects are written by the project
// service; in this repository it only backs test fixtures.
func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// UpdateProject saves every column of project. Test-only, like CreateProject.
func (r *ProjectRepository) UpdateProject(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteProject removes the project row. Test-only, like CreateProject; the
// index entry is dropped by the next upsert or rebuild.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, id).Error
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id uint) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// FindProjectsByClient returns the client's projects newest first. Equal
// creation times fall back to the higher id.
func (r *ProjectRepository) FindProjectsByClient(ctx context.Context, clientID uint, limit int) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
