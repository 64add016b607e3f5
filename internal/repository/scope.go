package repository

import (
	"github.com/jaydipchangani/project-management-backend/internal/access"
	"gorm.io/gorm"
)

type scopeKey struct {
	field    string
	relation access.Relation
}

// scopeClauses maps a base filter to a WHERE fragment taking the principal id.
type scopeClauses map[scopeKey]string

var projectScopes = scopeClauses{
	{access.FieldCreatedBy, access.RelationEquals}: "projects.created_by_id = ?",
	{access.FieldTeamMembers, access.RelationContains}: "EXISTS (SELECT 1 FROM project_members " +
		"WHERE project_members.project_id = projects.id AND project_members.user_id = ?)",
}

var taskScopes = scopeClauses{
	{access.FieldCreatedBy, access.RelationEquals}:  "tasks.created_by_id = ?",
	{access.FieldAssignedTo, access.RelationEquals}: "tasks.assigned_to_id = ?",
}

// applyScope restricts db to the rows visible under scope. Anything the
// table does not know how to express matches nothing.
func applyScope(db *gorm.DB, scope access.BaseFilter, clauses scopeClauses) *gorm.DB {
	if scope.IsEmpty() {
		return db
	}
	where, ok := clauses[scopeKey{scope.Field, scope.Relation}]
	if !ok {
		return db.Where("1 = 0")
	}
	return db.Where(where, scope.PrincipalID)
}
