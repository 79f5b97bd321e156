// internal/pkg/filter/filter_test.go
package filter

import (
	"strings"
	"testing"
)

func TestWhereSingleCondition(t *testing.T) {
	got, err := New("season_id").Where("season_id", Eq, int64(3)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "season_id = 3" {
		t.Errorf("fragment = %q", got)
	}
}

func TestWhereJoinsWithAnd(t *testing.T) {
	got, err := New("wins", "losses").
		Where("wins", GtEq, 5).
		Where("losses", Lt, 3).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "wins >= 5 AND losses < 3" {
		t.Errorf("fragment = %q", got)
	}
}

func TestWhereRejectsUnknownColumn(t *testing.T) {
	_, err := New("name").Where("password_hash", Eq, "x").Build()
	if err == nil {
		t.Fatal("expected error for column outside the allow list")
	}
}

func TestWherePoisonsOnFirstError(t *testing.T) {
	b := New("name").
		Where("nope", Eq, 1).
		Where("name", Eq, "ok")
	if _, err := b.Build(); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("Build = %v, want first failure reported", err)
	}
}

func TestWhereRejectsUnknownOperator(t *testing.T) {
	_, err := New("name").Where("name", Op("; DROP TABLE"), "x").Build()
	if err == nil {
		t.Fatal("expected error for unknown operator")
	}
}

func TestStringValuesAreQuoted(t *testing.T) {
	got, err := New("name").Where("name", Eq, "O'Brien").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "name = 'O''Brien'" {
		t.Errorf("fragment = %q", got)
	}
}

func TestPrefixLikeEscapesWildcards(t *testing.T) {
	got, err := New("name").Where("name", PrefixLike, "50%_a").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != `name LIKE '50\%\_a%'` {
		t.Errorf("fragment = %q", got)
	}
}

func TestPrefixLikeNeedsString(t *testing.T) {
	if _, err := New("name").Where("name", PrefixLike, 42).Build(); err == nil {
		t.Fatal("expected error for non-string prefix value")
	}
}

func TestOrderBy(t *testing.T) {
	b := New("wins", "name")
	asc, err := b.OrderBy("name", false)
	if err != nil || asc != "name ASC" {
		t.Errorf("OrderBy asc = %q, %v", asc, err)
	}
	desc, err := b.OrderBy("wins", true)
	if err != nil || desc != "wins DESC" {
		t.Errorf("OrderBy desc = %q, %v", desc, err)
	}
	if _, err := b.OrderBy("secret", false); err == nil {
		t.Error("expected error for column outside the allow list")
	}
}

func TestBuildEmpty(t *testing.T) {
	got, err := New("a").Build()
	if err != nil || got != "" {
		t.Errorf("empty Build = %q, %v", got, err)
	}
}

func TestBoolLiterals(t *testing.T) {
	got, err := New("invite_only").Where("invite_only", Eq, true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "invite_only = TRUE" {
		t.Errorf("fragment = %q", got)
	}
}
