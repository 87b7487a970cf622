// internal/adapters/db/repository.go
package db

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/medstock-be/internal/core/domain"
)

// MedicinesTable is the table both stores persist records in.
const MedicinesTable = "medicines"

// Dialect captures what differs between the SQL backends when building
// medicine queries.
type Dialect struct {
	Placeholder squirrel.PlaceholderFormat
	// Contains matches col against an already-escaped %pattern%, ignoring case
	Contains func(col, pattern string) squirrel.Sqlizer
	// Columns maps a sort field to its column, for stores whose column
	// names differ from the field names.
	Columns map[domain.SortField]string
}

// PostgresDialect uses $n placeholders and ILIKE.
var PostgresDialect = Dialect{
	Placeholder: squirrel.Dollar,
	Contains: func(col, pattern string) squirrel.Sqlizer {
		return squirrel.Expr(col+` ILIKE ? ESCAPE '\'`, pattern)
	},
}

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ApplyFilters adds the search, category and status predicates of q.
func (d Dialect) ApplyFilters(qb squirrel.SelectBuilder, q domain.ListQuery) squirrel.SelectBuilder {
	if q.Search != "" {
		pattern := "%" + EscapeLike(q.Search) + "%"
		qb = qb.Where(squirrel.Or{
			d.Contains("name", pattern),
			d.Contains("category", pattern),
		})
	}
	if q.Category != "" {
		qb = qb.Where(d.Contains("category", "%"+EscapeLike(q.Category)+"%"))
	}
	if q.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": string(q.Status)})
	}
	return qb
}

// OrderBy returns the ORDER BY terms for q, with id as the tiebreak in the
// same direction.
func (d Dialect) OrderBy(q domain.ListQuery) []string {
	field := q.SortField
	if !field.Valid() {
		field = domain.SortByCreatedAt
	}
	col := string(field)
	if mapped, ok := d.Columns[field]; ok {
		col = mapped
	}

	dir := "DESC"
	if q.SortDir == domain.SortAsc {
		dir = "ASC"
	}
	return []string{fmt.Sprintf("%s %s", col, dir), "id " + dir}
}

// Page applies LIMIT and OFFSET.
func Page(qb squirrel.SelectBuilder, q domain.ListQuery) squirrel.SelectBuilder {
	if q.Limit > 0 {
		qb = qb.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		qb = qb.Offset(uint64(q.Offset))
	}
	return qb
}
