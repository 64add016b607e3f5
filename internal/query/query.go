// Package query turns untrusted list parameters into a normalized descriptor
// of predicates, search, sort order and pagination.
package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jaydipchangani/project-management-backend/internal/constants"
)

// Reserved parameter names that never become filter predicates.
const (
	ParamSearch = "search"
	ParamSort   = "sort"
	ParamPage   = "page"
	ParamLimit  = "limit"
)

// DefaultSortField is used when the client does not ask for an order.
const DefaultSortField = "createdAt"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Operator is a comparison understood by the persistence layer.
type Operator int

const (
	OpEq Operator = iota
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
)

var operatorTokens = map[string]Operator{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpGt:
		return "gt"
	case OpGte:
		return "gte"
	case OpLt:
		return "lt"
	case OpLte:
		return "lte"
	case OpIn:
		return "in"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Predicate compares a field against one value, or a set of values for OpIn.
type Predicate struct {
	Field  string
	Op     Operator
	Values []string
}

// Search is a case-insensitive substring match OR'ed across Fields.
type Search struct {
	Term   string
	Fields []string
}

// Filter holds the AND'ed predicates and the optional search disjunction.
type Filter struct {
	Predicates []Predicate
	Search     *Search
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.Predicates) == 0 && f.Search == nil
}

// SortField is one entry of an ordering.
type SortField struct {
	Field string
	Desc  bool
}

// Descriptor is the normalized form of a list request.
type Descriptor struct {
	Filter Filter
	Sort   []SortField
	Page   int
	Limit  int
	Skip   int
}

// ValidationError reports a query parameter that could not be interpreted.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %s", e.Param, e.Reason)
}

func invalid(param, format string, args ...any) *ValidationError {
	return &ValidationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// Build parses raw query parameters. Only the first value of a repeated key is used.
// searchable lists the fields the search term is matched against; when empty,
// the search parameter is ignored.
func Build(raw map[string][]string, searchable []string) (Descriptor, error) {
	d := Descriptor{
		Sort:  DefaultSort(),
		Page:  constants.DefaultPage,
		Limit: constants.DefaultPageSize,
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := first(raw[key])

		switch key {
		case ParamSearch:
			term := strings.TrimSpace(value)
			if term != "" && len(searchable) > 0 {
				fields := make([]string, len(searchable))
				copy(fields, searchable)
				d.Filter.Search = &Search{Term: term, Fields: fields}
			}
		case ParamSort:
			order, err := ParseSort(value)
			if err != nil {
				return Descriptor{}, err
			}
			if len(order) > 0 {
				d.Sort = order
			}
		case ParamPage:
			d.Page = positiveOr(value, constants.DefaultPage)
		case ParamLimit:
			d.Limit = positiveOr(value, constants.DefaultPageSize)
		default:
			p, err := parsePredicate(key, value)
			if err != nil {
				return Descriptor{}, err
			}
			d.Filter.Predicates = append(d.Filter.Predicates, p)
		}
	}

	if d.Limit > constants.MaxPageSize {
		d.Limit = constants.MaxPageSize
	}
	if d.Page > constants.MaxPage {
		d.Page = constants.MaxPage
	}
	d.Skip = (d.Page - 1) * d.Limit

	return d, nil
}

// DefaultSort returns the ordering used when none is requested: newest first.
func DefaultSort() []SortField {
	return []SortField{{Field: DefaultSortField, Desc: true}}
}

// ParseSort parses a comma separated field list where a leading '-' means descending.
// Empty segments are skipped.
func ParseSort(s string) ([]SortField, error) {
	var out []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if !identifierPattern.MatchString(name) {
			return nil, invalid(ParamSort, "%q is not a valid field name", part)
		}
		out = append(out, SortField{Field: name, Desc: desc})
	}
	return out, nil
}

// parsePredicate handles "field" and "field[op]" keys.
func parsePredicate(key, value string) (Predicate, error) {
	field, op, err := parseKey(key)
	if err != nil {
		return Predicate{}, err
	}

	if op != OpIn {
		return Predicate{Field: field, Op: op, Values: []string{value}}, nil
	}

	var values []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return Predicate{}, invalid(key, "in requires at least one value")
	}
	return Predicate{Field: field, Op: OpIn, Values: values}, nil
}

func parseKey(key string) (string, Operator, error) {
	open := strings.IndexByte(key, '[')
	end := strings.IndexByte(key, ']')

	if open < 0 && end < 0 {
		if !identifierPattern.MatchString(key) {
			return "", 0, invalid(key, "not a valid field name")
		}
		return key, OpEq, nil
	}

	if open < 0 || end < open || end != len(key)-1 ||
		strings.Count(key, "[") != 1 || strings.Count(key, "]") != 1 {
		return "", 0, invalid(key, "malformed operator syntax, expected field[op]")
	}

	field, token := key[:open], key[open+1:end]
	if !identifierPattern.MatchString(field) {
		return "", 0, invalid(key, "not a valid field name")
	}
	if token == "" {
		return "", 0, invalid(key, "missing operator")
	}
	op, ok := operatorTokens[token]
	if !ok {
		return "", 0, invalid(key, "unknown operator %q", token)
	}
	return field, op, nil
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
