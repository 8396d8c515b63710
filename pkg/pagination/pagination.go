// Package pagination normalizes page/per-page/sort/filter state coming from
// the UI into the query descriptor the repository layer consumes. It is the
// single place where the frontend and the data layer agree on a list
// "protocol": page is 1-based, sort is a field name optionally prefixed with
// '-' for descending, and filters are joined into a conjunction of
// field-operator-value clauses.
package pagination

import (
	"math"
	"strings"
)

const (
	// DefaultPerPage is the page size used when the caller supplies none.
	DefaultPerPage = 20
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEquals Operator = "="
	OpGTE    Operator = ">="
	OpLTE    Operator = "<="
)

// Filter is a single field constraint.
type Filter struct {
	Field string
	Op    Operator
	Value string
}

// Params represents the raw list parameters as bound from the request.
type Params struct {
	Page    int    `form:"page" json:"page"`
	PerPage int    `form:"per_page" json:"per_page"`
	Sort    string `form:"sort" json:"sort"`
	Filters []Filter
}

// Default returns the default list parameters: first page, DefaultPerPage
// items, unsorted, unfiltered.
func Default() *Params {
	return &Params{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps parameters into valid ranges. Absent or invalid values
// fall back to the documented defaults.
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset calculates the row offset for SQL queries.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Descriptor is the normalized query shape handed to the data layer.
// Sort is passed through unchanged; the '-field' descending convention is
// shared between caller and backend, not interpreted here.
type Descriptor struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Sort    string `json:"sort"`
	Filter  string `json:"filter"`
}

// Descriptor validates the parameters and builds the normalized descriptor.
// Filter values are escaped so untrusted input cannot break out of the
// filter-string syntax.
func (p *Params) Descriptor() Descriptor {
	p.Validate()

	clauses := make([]string, 0, len(p.Filters))
	for _, f := range p.Filters {
		field := sanitizeField(f.Field)
		if field == "" {
			continue
		}
		op := f.Op
		if op != OpEquals && op != OpGTE && op != OpLTE {
			op = OpEquals
		}
		clauses = append(clauses, field+" "+string(op)+" '"+escapeValue(f.Value)+"'")
	}

	return Descriptor{
		Page:    p.Page,
		PerPage: p.PerPage,
		Sort:    p.Sort,
		Filter:  strings.Join(clauses, " && "),
	}
}

// sanitizeField keeps only characters that can form a legal column name.
func sanitizeField(field string) string {
	var b strings.Builder
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeValue doubles single quotes and strips control characters so a
// value can never terminate its enclosing quoted literal.
func escapeValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if r == '\'' {
			b.WriteString("''")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// OrderClause translates a '-field' sort expression into an SQL ORDER BY
// fragment, refusing fields outside the allow-list. The boolean reports
// whether the sort was accepted.
func OrderClause(sort string, allowed ...string) (string, bool) {
	if sort == "" {
		return "", false
	}
	field := sort
	desc := false
	if strings.HasPrefix(sort, "-") {
		field = sort[1:]
		desc = true
	}
	for _, a := range allowed {
		if field == a {
			if desc {
				return field + " DESC", true
			}
			return field + " ASC", true
		}
	}
	return "", false
}

// Pagination is the page metadata returned alongside list results.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination creates the page metadata for a result set.
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult pairs a page of items with its pagination metadata.
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result.
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}
