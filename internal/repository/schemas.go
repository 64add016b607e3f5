package repository

import (
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/query"
)

// ProjectSchema lists the project fields clients may filter, sort and search on.
var ProjectSchema = withAliases(query.Schema{
	"id":          {Column: "projects.id", Kind: query.KindID},
	"name":        {Column: "projects.name"},
	"description": {Column: "projects.description"},
	"status":      {Column: "projects.status", Kind: query.KindEnum, Enum: enumValues(models.ProjectStatuses)},
	"createdBy":   {Column: "projects.created_by_id", Kind: query.KindID},
	"createdAt":   {Column: "projects.created_at", Kind: query.KindTime},
	"updatedAt":   {Column: "projects.updated_at", Kind: query.KindTime},
})

// TaskSchema lists the task fields clients may filter, sort and search on.
var TaskSchema = withAliases(query.Schema{
	"id":          {Column: "tasks.id", Kind: query.KindID},
	"title":       {Column: "tasks.title"},
	"description": {Column: "tasks.description"},
	"status":      {Column: "tasks.status", Kind: query.KindEnum, Enum: enumValues(models.TaskStatuses)},
	"priority":    {Column: "tasks.priority", Kind: query.KindEnum, Enum: enumValues(models.TaskPriorities)},
	"dueDate":     {Column: "tasks.due_date", Kind: query.KindTime},
	"project":     {Column: "tasks.project_id", Kind: query.KindID},
	"projectId":   {Column: "tasks.project_id", Kind: query.KindID},
	"assignedTo":  {Column: "tasks.assigned_to_id", Kind: query.KindID},
	"createdBy":   {Column: "tasks.created_by_id", Kind: query.KindID},
	"createdAt":   {Column: "tasks.created_at", Kind: query.KindTime},
	"updatedAt":   {Column: "tasks.updated_at", Kind: query.KindTime},
})

// UserSchema lists the user fields clients may filter, sort and search on.
var UserSchema = withAliases(query.Schema{
	"id":        {Column: "users.id", Kind: query.KindID},
	"name":      {Column: "users.name"},
	"email":     {Column: "users.email"},
	"role":      {Column: "users.role", Kind: query.KindEnum, Enum: enumValues(models.Roles)},
	"createdAt": {Column: "users.created_at", Kind: query.KindTime},
})

// withAliases adds a snake_case name for every camelCase field.
func withAliases(s query.Schema) query.Schema {
	out := make(query.Schema, len(s)*2)
	for name, field := range s {
		out[name] = field
		out[snakeCase(name)] = field
	}
	return out
}

func snakeCase(s string) string {
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			out = append(out, '_', c+('a'-'A'))
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
