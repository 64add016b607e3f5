package dto

import (
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

// DocumentDTO represents an attached project document
type DocumentDTO struct {
	ID         uint64    `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	CreatedByID uint64               `json:"created_by_id"`
	CreatedBy   *UserDTO             `json:"created_by,omitempty"`
	TeamMembers []UserDTO            `json:"team_members"`
	Documents   []DocumentDTO        `json:"documents"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ActivityLogDTO represents an activity log entry
type ActivityLogDTO struct {
	ID          uint64                 `json:"id"`
	ProjectID   uint64                 `json:"project_id"`
	Action      string                 `json:"action"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	PerformedBy *UserDTO               `json:"performed_by,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ToDocumentDTO converts a ProjectDocument model to DocumentDTO
func ToDocumentDTO(doc models.ProjectDocument) DocumentDTO {
	return DocumentDTO{
		ID:         doc.ID,
		Filename:   doc.Filename,
		Path:       doc.StoragePath,
		URL:        doc.URL,
		UploadedAt: doc.UploadedAt,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatedByID: project.CreatedByID,
		CreatedBy:   optionalUser(project.CreatedBy),
		TeamMembers: Map(project.TeamMembers, ToUserDTO),
		Documents:   Map(project.Documents, ToDocumentDTO),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToActivityLogDTO converts an ActivityLog model to ActivityLogDTO
func ToActivityLogDTO(entry models.ActivityLog) ActivityLogDTO {
	return ActivityLogDTO{
		ID:          entry.ID,
		ProjectID:   entry.ProjectID,
		Action:      entry.Action,
		Metadata:    entry.Metadata,
		PerformedBy: optionalUser(entry.PerformedBy),
		CreatedAt:   entry.CreatedAt,
	}
}
