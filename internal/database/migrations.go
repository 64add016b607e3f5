package database

import (
	"fmt"
	"log"

	"github.com/jaydipchangani/project-management-backend/internal/models"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate.
var Models = []any{
	&models.User{},
	&models.Project{},
	&models.ProjectDocument{},
	&models.Task{},
	&models.ActivityLog{},
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// compositeIndexes are the named multi-column indexes declared on the models.
// Tables created before the index tags existed do not get them from AutoMigrate.
var compositeIndexes = []struct {
	model any
	name  string
}{
	{&models.Project{}, "idx_projects_created_by_status"},
	{&models.Task{}, "idx_tasks_assigned_status"},
	{&models.ActivityLog{}, "idx_activity_logs_project_created"},
}

// AddIndexes creates any missing composite index.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Printf("Index %s already exists, skipping", idx.name)
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Printf("Created index %s", idx.name)
	}
	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
