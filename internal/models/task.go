package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskPriorities lists every valid task priority.
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ProjectID    uint64         `gorm:"not null;index" json:"project_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	AssignedToID uint64         `gorm:"not null;index:idx_tasks_assigned_status,priority:1" json:"assigned_to_id"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'Pending';index:idx_tasks_assigned_status,priority:2" json:"status"`
	Priority     TaskPriority   `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	DueDate      *time.Time     `json:"due_date"`
	CreatedByID  uint64         `gorm:"not null;index" json:"created_by_id"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo User    `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedBy  User    `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
