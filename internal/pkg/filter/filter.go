// internal/pkg/filter/filter.go

// Package filter compiles allow-listed column/operator conditions into SQL
// fragments for view queries. The execution engine concatenates Where and
// OrderBy fragments as-is, so every fragment built from request input must
// come through here: columns and operators are checked against a fixed
// allow list and values are quoted by the builder itself.
package filter

import (
	"fmt"
	"strings"
)

// Op is a permitted comparison operator.
type Op string

const (
	Eq         Op = "="
	NotEq      Op = "<>"
	Gt         Op = ">"
	GtEq       Op = ">="
	Lt         Op = "<"
	LtEq       Op = "<="
	PrefixLike Op = "prefix" // compiles to LIKE 'value%'
)

// Builder accumulates conditions for one view. Columns not named at
// construction are rejected.
type Builder struct {
	allowed map[string]bool
	conds   []string
	err     error
}

// New creates a Builder restricted to the given columns.
func New(columns ...string) *Builder {
	allowed := make(map[string]bool, len(columns))
	for _, c := range columns {
		allowed[strings.ToLower(c)] = true
	}
	return &Builder{allowed: allowed}
}

// Where adds a condition on an allow-listed column. Unknown columns or
// operators poison the builder; Build reports the first failure.
func (b *Builder) Where(column string, op Op, value any) *Builder {
	if b.err != nil {
		return b
	}
	col := strings.ToLower(column)
	if !b.allowed[col] {
		b.err = fmt.Errorf("column %q is not filterable", column)
		return b
	}
	switch op {
	case Eq, NotEq, Gt, GtEq, Lt, LtEq:
		b.conds = append(b.conds, fmt.Sprintf("%s %s %s", col, op, literal(value)))
	case PrefixLike:
		s, ok := value.(string)
		if !ok {
			b.err = fmt.Errorf("prefix filter on %q needs a string value", column)
			return b
		}
		b.conds = append(b.conds, fmt.Sprintf("%s LIKE %s", col, prefixLiteral(s)))
	default:
		b.err = fmt.Errorf("operator %q is not permitted", op)
	}
	return b
}

// Build returns the WHERE fragment (without the keyword), empty when no
// conditions were added.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return strings.Join(b.conds, " AND "), nil
}

// OrderBy compiles an ordering fragment for an allow-listed column.
func (b *Builder) OrderBy(column string, descending bool) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	col := strings.ToLower(column)
	if !b.allowed[col] {
		return "", fmt.Errorf("column %q is not sortable", column)
	}
	if descending {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}

func literal(v any) string {
	switch t := v.(type) {
	case string:
		return quote(t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int, int32, int64:
		return fmt.Sprintf("%d", t)
	case float32, float64:
		return fmt.Sprintf("%v", t)
	default:
		return quote(fmt.Sprintf("%v", t))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func prefixLiteral(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return quote(escaped + "%")
}
