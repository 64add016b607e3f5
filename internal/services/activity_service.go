package services

import (
	"context"
	"fmt"

	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"gorm.io/datatypes"
)

// ActivityService appends to and reads the per-project activity log
type ActivityService struct {
	repo repository.ActivityLogRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(repo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record appends an entry. A failed write is always returned to the caller.
func (s *ActivityService) Record(ctx context.Context, projectID, performedByID uint64, action string, metadata map[string]any) error {
	entry := &models.ActivityLog{
		ProjectID:     projectID,
		PerformedByID: performedByID,
		Action:        action,
	}
	if len(metadata) > 0 {
		entry.Metadata = datatypes.JSONMap(metadata)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListForProject returns a project's log, newest first
func (s *ActivityService) ListForProject(ctx context.Context, projectID uint64) ([]models.ActivityLog, error) {
	logs, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return logs, nil
}
