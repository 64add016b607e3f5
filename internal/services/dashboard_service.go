package services

import (
	"context"
	"fmt"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/repository"
)

// ProjectCounts summarizes the projects visible to a principal
type ProjectCounts struct {
	Total     int64
	Active    int64
	Completed int64
}

// TaskCounts summarizes the tasks visible to a principal
type TaskCounts struct {
	Total      int64
	Completed  int64
	Pending    int64
	InProgress int64
}

// DashboardSummary is the role-scoped overview shown on the dashboard
type DashboardSummary struct {
	Role           models.Role
	Projects       ProjectCounts
	Tasks          TaskCounts
	RecentProjects []models.Project
	RecentTasks    []models.Task
}

// DashboardService aggregates counts and recent items
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// Overview returns the dashboard summary for the principal
func (s *DashboardService) Overview(ctx context.Context, p access.Principal) (*DashboardSummary, error) {
	projectScope := access.ScopeFor(p, access.ResourceProject)
	taskScope := access.ScopeFor(p, access.ResourceTask)

	summary := &DashboardSummary{Role: p.Role}

	projectCounts := []struct {
		dst    *int64
		status models.ProjectStatus
	}{
		{&summary.Projects.Total, ""},
		{&summary.Projects.Active, models.ProjectStatusActive},
		{&summary.Projects.Completed, models.ProjectStatusCompleted},
	}
	for _, c := range projectCounts {
		n, err := s.projectRepo.Count(ctx, projectScope, statusFilter(string(c.status)))
		if err != nil {
			return nil, fmt.Errorf("failed to count projects: %w", err)
		}
		*c.dst = n
	}

	taskCounts := []struct {
		dst    *int64
		status models.TaskStatus
	}{
		{&summary.Tasks.Total, ""},
		{&summary.Tasks.Completed, models.TaskStatusCompleted},
		{&summary.Tasks.Pending, models.TaskStatusPending},
		{&summary.Tasks.InProgress, models.TaskStatusInProgress},
	}
	for _, c := range taskCounts {
		n, err := s.taskRepo.Count(ctx, taskScope, statusFilter(string(c.status)))
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
		*c.dst = n
	}

	recent := query.Descriptor{
		Sort:  query.DefaultSort(),
		Page:  1,
		Limit: constants.RecentItemsLimit,
	}

	projects, _, err := s.projectRepo.List(ctx, projectScope, recent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}
	summary.RecentProjects = projects

	tasks, _, err := s.taskRepo.List(ctx, taskScope, recent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tasks: %w", err)
	}
	summary.RecentTasks = tasks

	return summary, nil
}

// statusFilter matches everything when status is empty.
func statusFilter(status string) query.Filter {
	if status == "" {
		return query.Filter{}
	}
	return query.Filter{Predicates: []query.Predicate{
		{Field: "status", Op: query.OpEq, Values: []string{status}},
	}}
}
