package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []ProjectStatus{ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold}

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedByID uint64         `gorm:"not null;index:idx_projects_created_by_status,priority:1" json:"created_by_id"`
	Status      ProjectStatus  `gorm:"type:varchar(20);not null;default:'Active';index:idx_projects_created_by_status,priority:2" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy   User              `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	TeamMembers []User            `gorm:"many2many:project_members;" json:"team_members,omitempty"`
	Documents   []ProjectDocument `gorm:"foreignKey:ProjectID" json:"documents,omitempty"`
}
