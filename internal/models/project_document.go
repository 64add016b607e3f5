package models

import "time"

// ProjectDocument is a file attached to a project. Rows are only ever appended.
type ProjectDocument struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	StoragePath string    `gorm:"type:varchar(512);not null" json:"path"`
	URL         string    `gorm:"type:varchar(1024);not null" json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
