package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit record of an action taken against a project.
type ActivityLog struct {
	ID            uint64            `gorm:"primarykey" json:"id"`
	ProjectID     uint64            `gorm:"not null;index:idx_activity_logs_project_created,priority:1" json:"project_id"`
	PerformedByID uint64            `gorm:"not null" json:"performed_by_id"`
	Action        string            `gorm:"type:varchar(512);not null" json:"action"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"index:idx_activity_logs_project_created,priority:2" json:"created_at"`

	// Relations
	PerformedBy User `gorm:"foreignKey:PerformedByID" json:"performed_by,omitempty"`
}
