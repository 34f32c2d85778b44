package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder constructs the small set of SQL shapes the payroll
// repositories need: filtered SELECTs with joins, and plain INSERTs.
// Conditions are written with `?` placeholders and rewritten to
// Postgres-style `$n` on Build.
type SQLBuilder struct {
	table    string
	columns  []string
	values   []interface{}
	where    []string
	args     []interface{}
	joins    []string
	orderBy  []string
	limit    int
	offset   int
	isInsert bool
	isSelect bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Values sets the values for an INSERT.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// From specifies the table for a SELECT.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Join adds a join clause, e.g. Join("INNER", "salaries s", "e.id = s.employee_id").
func (b *SQLBuilder) Join(kind, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", kind, table, on))
	return b
}

// Where adds an AND condition with `?` placeholders.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// OrderBy adds an ORDER BY expression.
func (b *SQLBuilder) OrderBy(expr string) *SQLBuilder {
	b.orderBy = append(b.orderBy, expr)
	return b
}

// Limit sets the LIMIT clause.
func (b *SQLBuilder) Limit(n int) *SQLBuilder {
	b.limit = n
	return b
}

// Offset sets the OFFSET clause.
func (b *SQLBuilder) Offset(n int) *SQLBuilder {
	b.offset = n
	return b
}

// Build assembles the final query and its argument list.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder

	switch {
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = "?"
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		return numberPlaceholders(sb.String()), b.values

	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, j := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(j)
		}
		if len(b.where) > 0 {
			sb.WriteString(" WHERE ")
			sb.WriteString(strings.Join(b.where, " AND "))
		}
		if len(b.orderBy) > 0 {
			sb.WriteString(" ORDER BY ")
			sb.WriteString(strings.Join(b.orderBy, ", "))
		}
		if b.limit > 0 {
			sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
		}
		if b.offset > 0 {
			sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
		}
		return numberPlaceholders(sb.String()), b.args
	}

	return "", nil
}

// numberPlaceholders rewrites each `?` into Postgres positional `$n`.
func numberPlaceholders(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(fmt.Sprintf("$%d", n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
