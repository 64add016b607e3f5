package repository

import (
	"context"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/database"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering, sorting and pagination
func (r *GormTaskRepository) List(ctx context.Context, scope access.BaseFilter, q query.Descriptor) ([]models.Task, int64, error) {
	resolved, err := TaskSchema.Resolve(q)
	if err != nil {
		return nil, 0, err
	}

	base := applyScope(r.db.WithContext(ctx).Model(&models.Task{}), scope, taskScopes)
	base = database.ApplyFilter(base, resolved.Conditions, resolved.Search).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	err = database.ApplyOrder(base, resolved.Order, "tasks.id").
		Scopes(database.Paginate(resolved)).
		Preload("AssignedTo").
		Preload("Project").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Count counts the tasks matching scope and f
func (r *GormTaskRepository) Count(ctx context.Context, scope access.BaseFilter, f query.Filter) (int64, error) {
	conds, search, err := TaskSchema.ResolveFilter(f)
	if err != nil {
		return 0, err
	}

	var total int64
	db := applyScope(r.db.WithContext(ctx).Model(&models.Task{}), scope, taskScopes)
	err = database.ApplyFilter(db, conds, search).Count(&total).Error
	return total, err
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
