package repository

import (
	"context"

	"github.com/jaydipchangani/project-management-backend/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an entry
func (r *GormActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Omit("PerformedBy").Create(entry).Error
}

// ListByProject returns a project's entries, newest first
func (r *GormActivityLogRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.ActivityLog, error) {
	logs := []models.ActivityLog{}
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Order("id DESC").
		// deleted users still show up as the actor of their past actions
		Preload("PerformedBy", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
