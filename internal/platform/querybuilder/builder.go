package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder numbers bind parameters and collects their values. Placeholders
// come out as $1, $2, ... in bind order, ready for lib/pq.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Condition is one WHERE predicate. Conditions are combined with AND.
type Condition struct {
	write func(sb *strings.Builder, b *binder)
}

func Eq(column string, value any) Condition {
	return Condition{write: func(sb *strings.Builder, b *binder) {
		sb.WriteString(column)
		sb.WriteString(" = ")
		sb.WriteString(b.bind(value))
	}}
}

func In(column string, values []any) Condition {
	return Condition{write: func(sb *strings.Builder, b *binder) {
		if len(values) == 0 {
			// An empty IN list matches nothing.
			sb.WriteString("1=0")
			return
		}
		sb.WriteString(column)
		sb.WriteString(" IN (")
		for i, v := range values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.bind(v))
		}
		sb.WriteString(")")
	}}
}

func IsNull(column string) Condition {
	return Condition{write: func(sb *strings.Builder, _ *binder) {
		sb.WriteString(column)
		sb.WriteString(" IS NULL")
	}}
}

// Expr inserts a raw fragment; each ? is replaced with a numbered
// placeholder bound to the matching argument.
func Expr(expr string, args ...any) Condition {
	return Condition{write: func(sb *strings.Builder, b *binder) {
		sb.WriteString(expandExpr(expr, args, b))
	}}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) Offset(offset int) *SelectBuilder {
	s.offset = offset
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var sb strings.Builder
	b := &binder{}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.table)
	writeWhere(&sb, b, s.where)
	if len(s.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(s.limit))
	}
	if s.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(s.offset))
	}

	return sb.String(), b.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (ins *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	ins.columns = append([]string(nil), columns...)
	return ins
}

func (ins *InsertBuilder) Values(values ...any) *InsertBuilder {
	ins.rows = append(ins.rows, append([]any(nil), values...))
	return ins
}

// Suffix appends a trailing fragment such as RETURNING or ON CONFLICT.
func (ins *InsertBuilder) Suffix(sql string) *InsertBuilder {
	ins.suffix = strings.TrimSpace(sql)
	return ins
}

func (ins *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(ins.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(ins.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(ins.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var sb strings.Builder
	b := &binder{}

	sb.WriteString("INSERT INTO ")
	sb.WriteString(ins.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(ins.columns, ", "))
	sb.WriteString(") VALUES ")

	for i, row := range ins.rows {
		if len(row) != len(ins.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(ins.columns))
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j, value := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.bind(value))
		}
		sb.WriteString(")")
	}

	if ins.suffix != "" {
		sb.WriteString(" ")
		sb.WriteString(ins.suffix)
	}

	return sb.String(), b.args, nil
}

type assignment struct {
	column string
	value  any
	raw    string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

// SetExpr assigns a raw expression, e.g. SetExpr("updated_at", "NOW()").
func (u *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, raw: expr, args: args})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(u.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var sb strings.Builder
	b := &binder{}

	sb.WriteString("UPDATE ")
	sb.WriteString(u.table)
	sb.WriteString(" SET ")
	for i, set := range u.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(set.column)
		sb.WriteString(" = ")
		if set.raw != "" {
			sb.WriteString(expandExpr(set.raw, set.args, b))
			continue
		}
		sb.WriteString(b.bind(set.value))
	}
	writeWhere(&sb, b, u.where)

	return sb.String(), b.args, nil
}

func writeWhere(sb *strings.Builder, b *binder, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		c.write(sb, b)
	}
}

func expandExpr(expr string, exprArgs []any, b *binder) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' {
			out.WriteByte(expr[i])
			continue
		}
		if next >= len(exprArgs) {
			out.WriteByte('?')
			continue
		}
		out.WriteString(b.bind(exprArgs[next]))
		next++
	}
	return out.String()
}
