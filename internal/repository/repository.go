package repository

import (
	"context"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project together with its documents and team member links
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects visible under scope, filtered, sorted and paginated by q
	List(ctx context.Context, scope access.BaseFilter, q query.Descriptor) ([]models.Project, int64, error)

	// Count counts projects visible under scope that match f
	Count(ctx context.Context, scope access.BaseFilter, f query.Filter) (int64, error)

	// Update saves the project's own columns
	Update(ctx context.Context, project *models.Project) error

	// ReplaceTeamMembers replaces the project's team member set
	ReplaceTeamMembers(ctx context.Context, project *models.Project, members []models.User) error

	// AddDocuments appends documents to a project
	AddDocuments(ctx context.Context, projectID uint64, docs []models.ProjectDocument) error

	// Delete soft deletes a project
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks visible under scope, filtered, sorted and paginated by q
	List(ctx context.Context, scope access.BaseFilter, q query.Descriptor) ([]models.Task, int64, error)

	// Count counts tasks visible under scope that match f
	Count(ctx context.Context, scope access.BaseFilter, f query.Filter) (int64, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByIDs returns the users among ids that exist
	FindByIDs(ctx context.Context, ids []uint64) ([]models.User, error)

	// List retrieves users filtered, sorted and paginated by q
	List(ctx context.Context, q query.Descriptor) ([]models.User, int64, error)

	// Update updates a user
	Update(ctx context.Context, user *models.User) error

	// Delete soft deletes a user
	Delete(ctx context.Context, id uint64) error
}

// ActivityLogRepository defines the interface for the append-only activity log.
// There is deliberately no update or delete.
type ActivityLogRepository interface {
	// Create appends an entry
	Create(ctx context.Context, entry *models.ActivityLog) error

	// ListByProject returns a project's entries, newest first
	ListByProject(ctx context.Context, projectID uint64) ([]models.ActivityLog, error)
}
