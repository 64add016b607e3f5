package repository

import (
	"context"
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/database"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a project. Team members are linked, never upserted.
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("CreatedBy", "TeamMembers.*").Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves projects with filtering, sorting and pagination
func (r *GormProjectRepository) List(ctx context.Context, scope access.BaseFilter, q query.Descriptor) ([]models.Project, int64, error) {
	resolved, err := ProjectSchema.Resolve(q)
	if err != nil {
		return nil, 0, err
	}

	base := applyScope(r.db.WithContext(ctx).Model(&models.Project{}), scope, projectScopes)
	base = database.ApplyFilter(base, resolved.Conditions, resolved.Search).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	err = database.ApplyOrder(base, resolved.Order, "projects.id").
		Scopes(database.Paginate(resolved)).
		Preload("CreatedBy").
		Preload("TeamMembers").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Count counts the projects matching scope and f
func (r *GormProjectRepository) Count(ctx context.Context, scope access.BaseFilter, f query.Filter) (int64, error) {
	conds, search, err := ProjectSchema.ResolveFilter(f)
	if err != nil {
		return 0, err
	}

	var total int64
	db := applyScope(r.db.WithContext(ctx).Model(&models.Project{}), scope, projectScopes)
	err = database.ApplyFilter(db, conds, search).Count(&total).Error
	return total, err
}

// Update writes every column of the project row, leaving associations alone
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// ReplaceTeamMembers replaces the project's team member links
func (r *GormProjectRepository) ReplaceTeamMembers(ctx context.Context, project *models.Project, members []models.User) error {
	assoc := r.db.WithContext(ctx).Model(project).Association("TeamMembers")
	if len(members) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(members)
}

// AddDocuments appends documents and touches the project's updated_at
func (r *GormProjectRepository) AddDocuments(ctx context.Context, projectID uint64, docs []models.ProjectDocument) error {
	if len(docs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range docs {
			docs[i].ProjectID = projectID
		}
		if err := tx.Create(&docs).Error; err != nil {
			return err
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			UpdateColumn("updated_at", time.Now()).Error
	})
}

// Delete soft deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
