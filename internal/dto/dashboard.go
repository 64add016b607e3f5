package dto

import (
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/services"
)

// ProjectCountsDTO holds project totals by status
type ProjectCountsDTO struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// TaskCountsDTO holds task totals by status
type TaskCountsDTO struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
}

// RecentProjectDTO is a project as listed on the dashboard
type RecentProjectDTO struct {
	ID        uint64               `json:"id"`
	Name      string               `json:"name"`
	Status    models.ProjectStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// RecentTaskDTO is a task as listed on the dashboard
type RecentTaskDTO struct {
	ID       uint64              `json:"id"`
	Title    string              `json:"title"`
	Status   models.TaskStatus   `json:"status"`
	Priority models.TaskPriority `json:"priority"`
	DueDate  *time.Time          `json:"due_date"`
}

// DashboardDTO is the dashboard overview
type DashboardDTO struct {
	Role           models.Role        `json:"role"`
	Projects       ProjectCountsDTO   `json:"projects"`
	Tasks          TaskCountsDTO      `json:"tasks"`
	RecentProjects []RecentProjectDTO `json:"recent_projects"`
	RecentTasks    []RecentTaskDTO    `json:"recent_tasks"`
}

// ToDashboardDTO converts a dashboard summary to DashboardDTO
func ToDashboardDTO(summary services.DashboardSummary) DashboardDTO {
	return DashboardDTO{
		Role:     summary.Role,
		Projects: ProjectCountsDTO(summary.Projects),
		Tasks:    TaskCountsDTO(summary.Tasks),
		RecentProjects: Map(summary.RecentProjects, func(p models.Project) RecentProjectDTO {
			return RecentProjectDTO{ID: p.ID, Name: p.Name, Status: p.Status, CreatedAt: p.CreatedAt}
		}),
		RecentTasks: Map(summary.RecentTasks, func(t models.Task) RecentTaskDTO {
			return RecentTaskDTO{ID: t.ID, Title: t.Title, Status: t.Status, Priority: t.Priority, DueDate: t.DueDate}
		}),
	}
}
