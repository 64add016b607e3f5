package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrProjectCreateForbidden = fmt.Errorf("%w: only admins and project managers can create projects", ErrForbidden)
	ErrNotProjectOwner        = fmt.Errorf("%w: only the project owner or an admin can perform this action", ErrForbidden)
	ErrProjectNameRequired    = fmt.Errorf("%w: project name is required", ErrValidation)
	ErrInvalidTeamMember      = fmt.Errorf("%w: one or more team members do not exist", ErrValidation)
	ErrNoFilesUploaded        = fmt.Errorf("%w: no files uploaded", ErrBadRequest)
	ErrTooManyFiles           = fmt.Errorf("%w: at most %d files can be uploaded at once", ErrBadRequest, constants.MaxUploadFiles)
)

var projectSearchFields = []string{"name", "description"}

var projectDetailPreloads = []string{"CreatedBy", "TeamMembers", "Documents"}

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	activity    *ActivityService
	store       storage.Store
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, activity *ActivityService, store storage.Store) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activity:    activity,
		store:       store,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	TeamMembers []uint64
	Files       []storage.Upload
}

// UpdateProjectInput represents a partial project update. Nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	TeamMembers *[]uint64
	Files       []storage.Upload
}

// Create creates a project owned by the principal
func (s *ProjectService) Create(ctx context.Context, p access.Principal, input CreateProjectInput) (*models.Project, error) {
	if !p.HasRole(models.RoleAdmin, models.RoleProjectManager) {
		return nil, ErrProjectCreateForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !status.Valid() {
		return nil, validationError("invalid project status %q", status)
	}

	if len(input.Files) > constants.MaxUploadFiles {
		return nil, ErrTooManyFiles
	}

	members, err := s.resolveMembers(ctx, input.TeamMembers)
	if err != nil {
		return nil, err
	}

	docs, err := s.storeFiles(ctx, input.Files)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		CreatedByID: p.ID,
		Status:      status,
		TeamMembers: members,
		Documents:   docs,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.discardFiles(ctx, docs)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.activity.Record(ctx, project.ID, p.ID, "Project created", nil); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, project.ID)
}

// List returns the projects visible to the principal that match params
func (s *ProjectService) List(ctx context.Context, p access.Principal, params map[string][]string) (*Page[models.Project], error) {
	d, err := query.Build(params, projectSearchFields)
	if err != nil {
		return nil, err
	}

	projects, total, err := s.projectRepo.List(ctx, access.ScopeFor(p, access.ResourceProject), d)
	if err != nil {
		return nil, wrapQueryError("failed to list projects", err)
	}

	return &Page[models.Project]{Items: projects, Total: total, Page: d.Page, Limit: d.Limit}, nil
}

// GetByID returns a project with its owner, team and documents
func (s *ProjectService) GetByID(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id, projectDetailPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Update applies a partial update. Uploaded files are appended to the documents.
func (s *ProjectService) Update(ctx context.Context, p access.Principal, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findManageable(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("invalid project status %q", *input.Status)
		}
		project.Status = *input.Status
	}

	if len(input.Files) > constants.MaxUploadFiles {
		return nil, ErrTooManyFiles
	}

	var members []models.User
	if input.TeamMembers != nil {
		if members, err = s.resolveMembers(ctx, *input.TeamMembers); err != nil {
			return nil, err
		}
	}

	docs, err := s.storeFiles(ctx, input.Files)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		s.discardFiles(ctx, docs)
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if input.TeamMembers != nil {
		if err := s.projectRepo.ReplaceTeamMembers(ctx, project, members); err != nil {
			s.discardFiles(ctx, docs)
			return nil, fmt.Errorf("failed to update team members: %w", err)
		}
	}
	if err := s.projectRepo.AddDocuments(ctx, project.ID, docs); err != nil {
		s.discardFiles(ctx, docs)
		return nil, fmt.Errorf("failed to attach documents: %w", err)
	}

	if err := s.activity.Record(ctx, project.ID, p.ID, "Project updated", nil); err != nil {
		return nil, err
	}
	if err := s.recordUploads(ctx, p, project.ID, "Uploaded new document: ", docs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, project.ID)
}

// Delete soft deletes a project, then records the deletion
func (s *ProjectService) Delete(ctx context.Context, p access.Principal, id uint64) error {
	project, err := s.findManageable(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return s.activity.Record(ctx, project.ID, p.ID, "Project deleted", nil)
}

// UploadDocuments appends files to a project's documents
func (s *ProjectService) UploadDocuments(ctx context.Context, p access.Principal, id uint64, files []storage.Upload) (*models.Project, error) {
	project, err := s.findManageable(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoFilesUploaded
	}
	if len(files) > constants.MaxUploadFiles {
		return nil, ErrTooManyFiles
	}

	docs, err := s.storeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.AddDocuments(ctx, project.ID, docs); err != nil {
		s.discardFiles(ctx, docs)
		return nil, fmt.Errorf("failed to attach documents: %w", err)
	}

	if err := s.recordUploads(ctx, p, project.ID, "Uploaded document: ", docs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, project.ID)
}

// ListLogs returns the activity log of an existing project
func (s *ProjectService) ListLogs(ctx context.Context, id uint64) ([]models.ActivityLog, error) {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return s.activity.ListForProject(ctx, id)
}

func (s *ProjectService) findManageable(ctx context.Context, p access.Principal, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !access.CanManageProject(p, project) {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

// resolveMembers loads the users for ids, failing if any does not exist.
func (s *ProjectService) resolveMembers(ctx context.Context, ids []uint64) ([]models.User, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	if len(users) != len(ids) {
		return nil, ErrInvalidTeamMember
	}
	return users, nil
}

// storeFiles validates every upload before writing any of them.
func (s *ProjectService) storeFiles(ctx context.Context, files []storage.Upload) ([]models.ProjectDocument, error) {
	for _, f := range files {
		if err := storage.Validate(f); err != nil {
			return nil, err
		}
	}

	docs := make([]models.ProjectDocument, 0, len(files))
	for _, f := range files {
		stored, err := s.store.Save(ctx, f)
		if err != nil {
			s.discardFiles(ctx, docs)
			return nil, err
		}
		docs = append(docs, models.ProjectDocument{
			Filename:    stored.Filename,
			StoragePath: stored.StoragePath,
			URL:         stored.URL,
			UploadedAt:  time.Now(),
		})
	}
	return docs, nil
}

// discardFiles removes files whose documents were never persisted.
func (s *ProjectService) discardFiles(ctx context.Context, docs []models.ProjectDocument) {
	// the request may already be cancelled; cleanup still has to run
	ctx = context.WithoutCancel(ctx)
	for _, doc := range docs {
		if err := s.store.Remove(ctx, doc.StoragePath); err != nil {
			log.Printf("failed to remove orphaned upload %s: %v", doc.StoragePath, err)
		}
	}
}

func (s *ProjectService) recordUploads(ctx context.Context, p access.Principal, projectID uint64, prefix string, docs []models.ProjectDocument) error {
	for _, doc := range docs {
		metadata := map[string]any{"filename": doc.Filename, "url": doc.URL}
		if err := s.activity.Record(ctx, projectID, p.ID, prefix+doc.Filename, metadata); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []uint64) []uint64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// wrapQueryError keeps query validation errors unwrapped for the caller.
func wrapQueryError(msg string, err error) error {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return fmt.Errorf("%s: %w", msg, err)
}
