package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskCreateForbidden  = fmt.Errorf("%w: only the project owner or an admin can add tasks", ErrForbidden)
	ErrTaskPermissionDenied = fmt.Errorf("%w: user does not have permission to modify this task", ErrForbidden)
	ErrNotTaskCreator       = fmt.Errorf("%w: only the task creator or an admin can delete this task", ErrForbidden)
	ErrTitleRequired        = fmt.Errorf("%w: title is required", ErrValidation)
	ErrTitleEmpty           = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrInvalidTaskAssignee  = fmt.Errorf("%w: assigned user does not exist", ErrValidation)
)

var taskSearchFields = []string{"title", "description"}

var taskDetailPreloads = []string{"AssignedTo", "Project", "CreatedBy"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	activity    *ActivityService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, activity *ActivityService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activity:    activity,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description string
	AssignedTo  uint64
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput represents a partial task update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	AssignedTo   *uint64
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// Create creates a task in a project the principal owns
func (s *TaskService) Create(ctx context.Context, p access.Principal, input CreateTaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !access.CanCreateTaskIn(p, project) {
		return nil, ErrTaskCreateForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.ensureAssignee(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, validationError("invalid task status %q", status)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, validationError("invalid task priority %q", priority)
	}

	task := &models.Task{
		ProjectID:    project.ID,
		Title:        title,
		Description:  input.Description,
		AssignedToID: input.AssignedTo,
		Status:       status,
		Priority:     priority,
		DueDate:      input.DueDate,
		CreatedByID:  p.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	action := fmt.Sprintf(`Task "%s" created`, task.Title)
	if err := s.activity.Record(ctx, project.ID, p.ID, action, taskMetadata(task)); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, task.ID)
}

// List returns the tasks visible to the principal that match params
func (s *TaskService) List(ctx context.Context, p access.Principal, params map[string][]string) (*Page[models.Task], error) {
	d, err := query.Build(params, taskSearchFields)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, p, d)
}

// ListAssignedTo is List narrowed to the tasks assigned to userID
func (s *TaskService) ListAssignedTo(ctx context.Context, p access.Principal, userID uint64, params map[string][]string) (*Page[models.Task], error) {
	d, err := query.Build(params, taskSearchFields)
	if err != nil {
		return nil, err
	}
	d.Filter.Predicates = append(d.Filter.Predicates, query.Predicate{
		Field:  "assignedTo",
		Op:     query.OpEq,
		Values: []string{strconv.FormatUint(userID, 10)},
	})
	return s.list(ctx, p, d)
}

func (s *TaskService) list(ctx context.Context, p access.Principal, d query.Descriptor) (*Page[models.Task], error) {
	tasks, total, err := s.taskRepo.List(ctx, access.ScopeFor(p, access.ResourceTask), d)
	if err != nil {
		return nil, wrapQueryError("failed to list tasks", err)
	}
	return &Page[models.Task]{Items: tasks, Total: total, Page: d.Page, Limit: d.Limit}, nil
}

// GetByID returns a task with its assignee, project and creator
func (s *TaskService) GetByID(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, taskDetailPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(ctx context.Context, p access.Principal, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanUpdateTask(p, task) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssignedTo != nil {
		if err := s.ensureAssignee(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedToID = *input.AssignedTo
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, validationError("invalid task status %q", *input.Status)
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, validationError("invalid task priority %q", *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	action := fmt.Sprintf(`Task "%s" updated`, task.Title)
	if err := s.activity.Record(ctx, task.ProjectID, p.ID, action, taskMetadata(task)); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, task.ID)
}

// Delete records the deletion and then soft deletes the task. If the log
// write fails the task is kept.
func (s *TaskService) Delete(ctx context.Context, p access.Principal, id uint64) error {
	task, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteTask(p, task) {
		return ErrNotTaskCreator
	}

	action := fmt.Sprintf(`Task "%s" deleted`, task.Title)
	if err := s.activity.Record(ctx, task.ProjectID, p.ID, action, taskMetadata(task)); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) find(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureAssignee(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrInvalidTaskAssignee
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTaskAssignee
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

func taskMetadata(task *models.Task) map[string]any {
	return map[string]any{"task_id": task.ID}
}
