package query

import (
	"slices"
	"strconv"
	"time"
)

// Kind tells Resolve how to convert a literal value.
type Kind int

const (
	KindString Kind = iota
	KindEnum
	KindTime
	KindID
)

// Field describes one filterable, sortable or searchable column.
type Field struct {
	Column string
	Kind   Kind
	Enum   []string
}

// Schema maps public field names to columns. Only listed names are accepted,
// so column names never come from client input.
type Schema map[string]Field

// Condition is a typed predicate bound to a column.
type Condition struct {
	Column string
	Op     Operator
	Args   []any
}

// SearchClause is a case-insensitive substring match OR'ed across Columns.
type SearchClause struct {
	Columns []string
	Term    string
}

// Order is one ORDER BY entry.
type Order struct {
	Column string
	Desc   bool
}

// Resolved is a descriptor bound to a schema and ready to execute.
type Resolved struct {
	Conditions []Condition
	Search     *SearchClause
	Order      []Order
	Offset     int
	Limit      int
}

// Resolve binds every field in d to a column and converts its values.
func (s Schema) Resolve(d Descriptor) (Resolved, error) {
	conds, search, err := s.ResolveFilter(d.Filter)
	if err != nil {
		return Resolved{}, err
	}
	order, err := s.ResolveSort(d.Sort)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{
		Conditions: conds,
		Search:     search,
		Order:      order,
		Offset:     d.Skip,
		Limit:      d.Limit,
	}, nil
}

// ResolveFilter binds predicates and search fields.
func (s Schema) ResolveFilter(f Filter) ([]Condition, *SearchClause, error) {
	conds := make([]Condition, 0, len(f.Predicates))
	for _, p := range f.Predicates {
		field, ok := s[p.Field]
		if !ok {
			return nil, nil, invalid(p.Field, "filtering on this field is not supported")
		}
		args := make([]any, 0, len(p.Values))
		for _, v := range p.Values {
			arg, err := field.convert(v)
			if err != nil {
				return nil, nil, invalid(p.Field, "%v", err)
			}
			args = append(args, arg)
		}
		conds = append(conds, Condition{Column: field.Column, Op: p.Op, Args: args})
	}

	var search *SearchClause
	if f.Search != nil {
		columns := make([]string, 0, len(f.Search.Fields))
		for _, name := range f.Search.Fields {
			field, ok := s[name]
			if !ok {
				return nil, nil, invalid(ParamSearch, "field %q is not searchable", name)
			}
			columns = append(columns, field.Column)
		}
		search = &SearchClause{Columns: columns, Term: f.Search.Term}
	}

	return conds, search, nil
}

// ResolveSort binds an ordering to columns.
func (s Schema) ResolveSort(sort []SortField) ([]Order, error) {
	order := make([]Order, 0, len(sort))
	for _, sf := range sort {
		field, ok := s[sf.Field]
		if !ok {
			return nil, invalid(ParamSort, "sorting by %q is not supported", sf.Field)
		}
		order = append(order, Order{Column: field.Column, Desc: sf.Desc})
	}
	return order, nil
}

func (f Field) convert(v string) (any, error) {
	switch f.Kind {
	case KindEnum:
		if !slices.Contains(f.Enum, v) {
			return nil, &enumError{value: v, allowed: f.Enum}
		}
		return v, nil
	case KindTime:
		return ParseTime(v)
	case KindID:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, &formatError{value: v, want: "a numeric id"}
		}
		return id, nil
	default:
		return v, nil
	}
}

// ParseTime accepts RFC3339 timestamps and plain dates.
func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Time{}, &formatError{value: v, want: "an RFC3339 timestamp or YYYY-MM-DD date"}
}

type enumError struct {
	value   string
	allowed []string
}

func (e *enumError) Error() string {
	return "value " + strconv.Quote(e.value) + " must be one of " + quoteAll(e.allowed)
}

type formatError struct {
	value string
	want  string
}

func (e *formatError) Error() string {
	return "value " + strconv.Quote(e.value) + " is not " + e.want
}

func quoteAll(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += strconv.Quote(v)
	}
	return out
}
