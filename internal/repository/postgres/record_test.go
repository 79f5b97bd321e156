// internal/repository/postgres/record_test.go
package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecordStringDefaults(t *testing.T) {
	rec := NewRecord([]string{"name", "bio"}, []any{"Wilson", nil})

	if got := rec.String("name"); got != "Wilson" {
		t.Errorf("String(name) = %q", got)
	}
	if got := rec.String("bio"); got != "" {
		t.Errorf("String(NULL) = %q, want empty", got)
	}
	if got := rec.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if _, ok := rec.NullString("bio"); ok {
		t.Error("NullString on NULL should report absence")
	}
}

func TestRecordStringFromBytes(t *testing.T) {
	rec := NewRecord([]string{"note"}, []any{[]byte("bytewise")})
	if got := rec.String("note"); got != "bytewise" {
		t.Errorf("String([]byte) = %q", got)
	}
}

func TestRecordCaseInsensitiveColumns(t *testing.T) {
	rec := NewRecord([]string{"Display_Name"}, []any{"Commish"})
	if got := rec.String("display_name"); got != "Commish" {
		t.Errorf("lowercase lookup = %q", got)
	}
	if got := rec.String("DISPLAY_NAME"); got != "Commish" {
		t.Errorf("uppercase lookup = %q", got)
	}
}

func TestRecordBoolAndTimeDefaults(t *testing.T) {
	now := time.Now()
	rec := NewRecord([]string{"invite_only", "created_at", "deleted_at"}, []any{true, now, nil})

	if !rec.Bool("invite_only") {
		t.Error("Bool(true) = false")
	}
	if rec.Bool("deleted_at") {
		t.Error("Bool on NULL should be false")
	}
	if !rec.Time("created_at").Equal(now) {
		t.Error("Time did not round-trip")
	}
	if !rec.Time("deleted_at").IsZero() {
		t.Error("Time on NULL should be zero")
	}
}

func TestRecordFloat64Shapes(t *testing.T) {
	rec := NewRecord(
		[]string{"f64", "f32", "i64", "i32", "i16", "absent_val"},
		[]any{float64(1.5), float32(2.5), int64(3), int32(4), int16(5), nil},
	)
	cases := map[string]float64{"f64": 1.5, "f32": 2.5, "i64": 3, "i32": 4, "i16": 5}
	for col, want := range cases {
		if got := rec.Float64(col); got != want {
			t.Errorf("Float64(%s) = %v, want %v", col, got, want)
		}
	}
	if got := rec.Float64("absent_val"); got != 0 {
		t.Errorf("Float64(NULL) = %v, want 0", got)
	}
}

func TestRecordUUID(t *testing.T) {
	id := uuid.New()
	rec := NewRecord([]string{"raw", "text", "bad"}, []any{[16]byte(id), id.String(), "junk"})

	if got := rec.UUID("raw"); got != id {
		t.Errorf("UUID from [16]byte = %v", got)
	}
	if got := rec.UUID("text"); got != id {
		t.Errorf("UUID from string = %v", got)
	}
	if got := rec.UUID("bad"); got != (uuid.UUID{}) {
		t.Errorf("UUID from junk = %v, want zero", got)
	}
}

func TestRecordStrings(t *testing.T) {
	rec := NewRecord([]string{"tags", "mixed", "empty"}, []any{
		[]string{"ppr", "dynasty"},
		[]any{"a", 1, "b"},
		nil,
	})

	if got := rec.Strings("tags"); len(got) != 2 || got[0] != "ppr" {
		t.Errorf("Strings = %v", got)
	}
	if got := rec.Strings("mixed"); len(got) != 2 {
		t.Errorf("Strings on mixed []any = %v, want non-strings skipped", got)
	}
	if got := rec.Strings("empty"); got != nil {
		t.Errorf("Strings on NULL = %v, want nil", got)
	}
}

func TestRecordInt64IsLoud(t *testing.T) {
	rec := NewRecord([]string{"id", "score", "gone"}, []any{int64(42), "not-a-number", nil})

	if n, err := rec.Int64("id"); err != nil || n != 42 {
		t.Errorf("Int64(id) = %d, %v", n, err)
	}

	// NULL is tolerated, zero without error
	if n, err := rec.Int64("gone"); err != nil || n != 0 {
		t.Errorf("Int64(NULL) = %d, %v, want 0 with no error", n, err)
	}

	if _, err := rec.Int64("missing"); err == nil {
		t.Error("Int64 on a missing column must fail")
	}
	if _, err := rec.Int64("score"); err == nil {
		t.Error("Int64 on a non-integer column must fail")
	}
}

func TestRecordNullInt64(t *testing.T) {
	rec := NewRecord([]string{"a", "b"}, []any{int32(7), nil})

	n, present, err := rec.NullInt64("a")
	if err != nil || !present || n != 7 {
		t.Errorf("NullInt64(a) = %d, %v, %v", n, present, err)
	}
	_, present, err = rec.NullInt64("b")
	if err != nil || present {
		t.Errorf("NullInt64(NULL) = present=%v, err=%v", present, err)
	}
	if _, _, err := rec.NullInt64("c"); err == nil {
		t.Error("NullInt64 on a missing column must fail")
	}
}

func TestRecordIntNarrows(t *testing.T) {
	rec := NewRecord([]string{"n"}, []any{int16(9)})
	if n, err := rec.Int("n"); err != nil || n != 9 {
		t.Errorf("Int = %d, %v", n, err)
	}
}
