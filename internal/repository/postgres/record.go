// internal/repository/postgres/record.go
package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Record is a single row exposed as a null-tolerant, case-insensitive column
// bag. Total getters return a documented default when the value is SQL NULL
// or the column is absent; the Null* variants report absence explicitly.
//
// The integer family is the deliberate exception: Int and Int64 fail instead
// of defaulting, because a typo'd column name must never turn an identifier
// into a silent zero. Keep that asymmetry when adding getters.
type Record struct {
	values map[string]any
}

func newRecord(rows pgx.Rows) (*Record, error) {
	vals, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	r := &Record{values: make(map[string]any, len(vals))}
	for i, fd := range fields {
		r.values[strings.ToLower(fd.Name)] = vals[i]
	}
	return r, nil
}

// NewRecord builds a Record from explicit column/value pairs. Used by callers
// that assemble rows outside a cursor (and by tests).
func NewRecord(columns []string, values []any) *Record {
	r := &Record{values: make(map[string]any, len(columns))}
	for i, c := range columns {
		if i < len(values) {
			r.values[strings.ToLower(c)] = values[i]
		}
	}
	return r
}

// Has reports whether the column is present in the row (even if NULL).
func (r *Record) Has(col string) bool {
	_, ok := r.values[strings.ToLower(col)]
	return ok
}

// String returns the column as a string, or "" when NULL or missing.
func (r *Record) String(col string) string {
	s, _ := r.NullString(col)
	return s
}

// NullString returns the column as a string and whether a value was present.
func (r *Record) NullString(col string) (string, bool) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// Bool returns the column as a bool, or false when NULL or missing.
func (r *Record) Bool(col string) bool {
	b, _ := r.NullBool(col)
	return b
}

func (r *Record) NullBool(col string) (bool, bool) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Time returns the column as a time.Time, or the zero time when NULL or
// missing.
func (r *Record) Time(col string) time.Time {
	t, _ := r.NullTime(col)
	return t
}

func (r *Record) NullTime(col string) (time.Time, bool) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

// Float64 returns a numeric column as float64, or 0 when NULL or missing.
// Handles every numeric wire shape pgx produces, including pgtype.Numeric.
func (r *Record) Float64(col string) float64 {
	f, _ := r.NullFloat64(col)
	return f
}

func (r *Record) NullFloat64(col string) (float64, bool) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return 0, false
		}
		return f.Float64, true
	default:
		return 0, false
	}
}

// UUID returns the column as a uuid.UUID, or the zero UUID when NULL,
// missing, or not a uuid column.
func (r *Record) UUID(col string) uuid.UUID {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return uuid.UUID{}
	}
	switch u := v.(type) {
	case [16]byte:
		return uuid.UUID(u)
	case string:
		id, err := uuid.Parse(u)
		if err != nil {
			return uuid.UUID{}
		}
		return id
	default:
		return uuid.UUID{}
	}
}

// Strings returns a text[] column as a string slice, or nil when NULL or
// missing.
func (r *Record) Strings(col string) []string {
	v, ok := r.values[strings.ToLower(col)]
	if !ok || v == nil {
		return nil
	}
	switch a := v.(type) {
	case []string:
		return a
	case []any:
		out := make([]string, 0, len(a))
		for _, e := range a {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Int64 returns an integer column. Unlike the other getters it fails on a
// missing column or a non-integer value: identifiers are never defaulted.
// NULL alone yields 0 without error.
func (r *Record) Int64(col string) (int64, error) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok {
		return 0, fmt.Errorf("column %q not present in result row", col)
	}
	if v == nil {
		return 0, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, fmt.Errorf("column %q holds %T, not an integer", col, v)
	}
	return n, nil
}

// Int is Int64 narrowed to int, with the same loud-failure contract.
func (r *Record) Int(col string) (int, error) {
	n, err := r.Int64(col)
	return int(n), err
}

// NullInt64 reports NULL explicitly; missing columns and type mismatches
// still fail loudly.
func (r *Record) NullInt64(col string) (int64, bool, error) {
	v, ok := r.values[strings.ToLower(col)]
	if !ok {
		return 0, false, fmt.Errorf("column %q not present in result row", col)
	}
	if v == nil {
		return 0, false, nil
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, false, fmt.Errorf("column %q holds %T, not an integer", col, v)
	}
	return n, true, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}
