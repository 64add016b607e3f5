package database

import (
	"strings"

	"github.com/jaydipchangani/project-management-backend/internal/query"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is portable across MySQL, Postgres and SQLite, unlike backslash.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// Paginate applies pagination to a GORM query
func Paginate(r query.Resolved) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(r.Offset).Limit(r.Limit)
	}
}

// ApplyFilter AND's every condition and the search disjunction onto db.
// Column names come from a query.Schema and are never client supplied.
func ApplyFilter(db *gorm.DB, conds []query.Condition, search *query.SearchClause) *gorm.DB {
	for _, c := range conds {
		switch c.Op {
		case query.OpIn:
			db = db.Where(c.Column+" IN ?", c.Args)
		case query.OpGt:
			db = db.Where(c.Column+" > ?", c.Args[0])
		case query.OpGte:
			db = db.Where(c.Column+" >= ?", c.Args[0])
		case query.OpLt:
			db = db.Where(c.Column+" < ?", c.Args[0])
		case query.OpLte:
			db = db.Where(c.Column+" <= ?", c.Args[0])
		default:
			db = db.Where(c.Column+" = ?", c.Args[0])
		}
	}

	if search != nil && len(search.Columns) > 0 {
		pattern := "%" + likeReplacer.Replace(strings.ToLower(search.Term)) + "%"
		parts := make([]string, len(search.Columns))
		args := make([]any, len(search.Columns))
		for i, col := range search.Columns {
			parts[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
			args[i] = pattern
		}
		db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	return db
}

// ApplyOrder adds ORDER BY clauses, then the primary key as a tie breaker.
func ApplyOrder(db *gorm.DB, order []query.Order, primaryKey string) *gorm.DB {
	for _, o := range order {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	desc := len(order) > 0 && order[0].Desc
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: primaryKey}, Desc: desc})
}
