package dto

import (
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

// ProjectRefDTO is the minimal project shown alongside a task
type ProjectRefDTO struct {
	ID     uint64               `json:"id"`
	Name   string               `json:"name"`
	Status models.ProjectStatus `json:"status"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	ProjectID    uint64              `json:"project_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	AssignedToID uint64              `json:"assigned_to_id"`
	CreatedByID  uint64              `json:"created_by_id"`
	Project      *ProjectRefDTO      `json:"project,omitempty"`
	AssignedTo   *UserDTO            `json:"assigned_to,omitempty"`
	CreatedBy    *UserDTO            `json:"created_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		AssignedToID: task.AssignedToID,
		CreatedByID:  task.CreatedByID,
		AssignedTo:   optionalUser(task.AssignedTo),
		CreatedBy:    optionalUser(task.CreatedBy),
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include project if preloaded
	if task.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{
			ID:     task.Project.ID,
			Name:   task.Project.Name,
			Status: task.Project.Status,
		}
	}

	return dto
}
