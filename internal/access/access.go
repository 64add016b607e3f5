// Package access derives role-based visibility filters and mutation permissions.
package access

import (
	"slices"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   uint64
	Role models.Role
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...models.Role) bool {
	return slices.Contains(roles, p.Role)
}

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Resource identifies a scoped collection.
type Resource int

const (
	ResourceProject Resource = iota
	ResourceTask
)

// Relation describes how a base filter constrains a field.
type Relation int

const (
	// RelationAll applies no constraint.
	RelationAll Relation = iota
	// RelationEquals requires Field == PrincipalID.
	RelationEquals
	// RelationContains requires the Field collection to contain PrincipalID.
	RelationContains
	// RelationNone matches nothing.
	RelationNone
)

// Fields referenced by base filters.
const (
	FieldCreatedBy   = "createdBy"
	FieldTeamMembers = "teamMembers"
	FieldAssignedTo  = "assignedTo"
)

// BaseFilter is the mandatory visibility constraint for a principal. It is
// always AND'ed with client supplied filters.
type BaseFilter struct {
	Field       string
	Relation    Relation
	PrincipalID uint64
}

// IsEmpty reports whether the filter allows everything.
func (b BaseFilter) IsEmpty() bool {
	return b.Relation == RelationAll
}

type rule struct {
	field    string
	relation Relation
}

var scopeRules = map[models.Role]map[Resource]rule{
	models.RoleAdmin: {
		ResourceProject: {relation: RelationAll},
		ResourceTask:    {relation: RelationAll},
	},
	models.RoleProjectManager: {
		ResourceProject: {field: FieldCreatedBy, relation: RelationEquals},
		// tasks they authored, not tasks of the projects they manage
		ResourceTask: {field: FieldCreatedBy, relation: RelationEquals},
	},
	models.RoleTeamMember: {
		ResourceProject: {field: FieldTeamMembers, relation: RelationContains},
		ResourceTask:    {field: FieldAssignedTo, relation: RelationEquals},
	},
}

// ScopeFor returns the base filter for p on resource. Unknown roles see nothing.
func ScopeFor(p Principal, resource Resource) BaseFilter {
	r, ok := scopeRules[p.Role][resource]
	if !ok {
		return BaseFilter{Relation: RelationNone}
	}
	if r.relation == RelationAll {
		return BaseFilter{Relation: RelationAll}
	}
	return BaseFilter{Field: r.field, Relation: r.relation, PrincipalID: p.ID}
}

// CanManageProject reports whether p may update, delete or upload to project.
func CanManageProject(p Principal, project *models.Project) bool {
	return p.IsAdmin() || project.CreatedByID == p.ID
}

// CanCreateTaskIn reports whether p may add tasks to project.
func CanCreateTaskIn(p Principal, project *models.Project) bool {
	return p.IsAdmin() || project.CreatedByID == p.ID
}

// CanUpdateTask reports whether p may update task.
func CanUpdateTask(p Principal, task *models.Task) bool {
	return p.IsAdmin() || task.CreatedByID == p.ID || task.AssignedToID == p.ID
}

// CanDeleteTask reports whether p may delete task.
func CanDeleteTask(p Principal, task *models.Task) bool {
	return p.IsAdmin() || task.CreatedByID == p.ID
}
