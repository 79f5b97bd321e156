// internal/repository/postgres/executor_test.go
package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	xerrors "gridiron-service/internal/pkg/errors"
)

func TestPlaceholders(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "()"},
		{1, "($1)"},
		{3, "($1, $2, $3)"},
	}
	for _, tc := range cases {
		if got := placeholders(tc.n); got != tc.want {
			t.Errorf("placeholders(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestCallSQL(t *testing.T) {
	if got := callSQL("user_login", 4); got != "SELECT * FROM user_login($1, $2, $3, $4)" {
		t.Errorf("callSQL = %q", got)
	}
	if got := callSQL("season_current", 0); got != "SELECT * FROM season_current()" {
		t.Errorf("callSQL no-arg = %q", got)
	}
}

func TestBuildSelect(t *testing.T) {
	cases := []struct {
		opts ViewOptions
		want string
	}{
		{ViewOptions{}, "SELECT * FROM vw_leagues"},
		{ViewOptions{Where: "season_id = 3"}, "SELECT * FROM vw_leagues WHERE season_id = 3"},
		{ViewOptions{OrderBy: "name ASC"}, "SELECT * FROM vw_leagues ORDER BY name ASC"},
		{ViewOptions{Where: "invite_only = TRUE", OrderBy: "created_at DESC", Limit: 10},
			"SELECT * FROM vw_leagues WHERE invite_only = TRUE ORDER BY created_at DESC LIMIT 10"},
	}
	for _, tc := range cases {
		if got := buildSelect("vw_leagues", tc.opts); got != tc.want {
			t.Errorf("buildSelect(%+v) = %q, want %q", tc.opts, got, tc.want)
		}
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent("cursor_1"); got != `"cursor_1"` {
		t.Errorf("quoteIdent = %q", got)
	}
	if got := quoteIdent(`odd"name`); got != `"odd""name"` {
		t.Errorf("quoteIdent with quote = %q", got)
	}
}

func TestClassifyStoreError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "P0001", Message: "team roster is full"}
	err := classify("roster_add_player", pgErr)

	var se *xerrors.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("classify did not return a StoreError: %v", err)
	}
	if se.Kind != xerrors.KindStore {
		t.Errorf("Kind = %v, want KindStore", se.Kind)
	}
	if msg, ok := xerrors.StoreMessage(err); !ok || msg != "team roster is full" {
		t.Errorf("StoreMessage = %q, %v", msg, ok)
	}
}

func TestClassifyTransportError(t *testing.T) {
	err := classify("user_login", errors.New("connection refused"))

	var se *xerrors.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("classify did not return a StoreError: %v", err)
	}
	if se.Kind != xerrors.KindTransport {
		t.Errorf("Kind = %v, want KindTransport", se.Kind)
	}
	if _, ok := xerrors.StoreMessage(err); ok {
		t.Error("transport errors must not surface a store message")
	}
}

func TestMappingError(t *testing.T) {
	err := mappingError("league_get", errors.New(`column "id" not present in result row`))
	if !xerrors.IsMapping(err) {
		t.Errorf("IsMapping = false for %v", err)
	}
}

func TestCollectSetsDrainsUnmappedCursors(t *testing.T) {
	fetched := []string{}
	fetch := func(cursor string, m SetMapper) ([]any, error) {
		fetched = append(fetched, cursor)
		if m == nil {
			// drained without a mapper
			return nil, nil
		}
		return []any{cursor}, nil
	}

	sets, err := collectSets(
		[]string{"c1", "c2", "c3"},
		[]SetMapper{
			func(r *Record) (any, error) { return nil, nil },
			func(r *Record) (any, error) { return nil, nil },
		},
		fetch,
	)
	if err != nil {
		t.Fatalf("collectSets: %v", err)
	}
	if len(sets) != 3 {
		t.Fatalf("len(sets) = %d, want the actual cursor count", len(sets))
	}
	if sets[2] == nil || len(sets[2]) != 0 {
		t.Errorf("unmapped set = %#v, want empty non-nil slice", sets[2])
	}
	if len(fetched) != 3 {
		t.Errorf("fetched %d cursors, want all 3 drained", len(fetched))
	}
}

func TestCollectSetsPropagatesFetchError(t *testing.T) {
	boom := errors.New("cursor vanished")
	_, err := collectSets([]string{"c1"}, nil, func(string, SetMapper) ([]any, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("collectSets error = %v, want propagated", err)
	}
}

func TestCollectSetsMoreMappersThanCursors(t *testing.T) {
	noop := func(r *Record) (any, error) { return nil, nil }
	sets, err := collectSets(
		[]string{"c1"},
		[]SetMapper{noop, noop},
		func(cursor string, m SetMapper) ([]any, error) { return []any{1}, nil },
	)
	if err != nil {
		t.Fatalf("collectSets: %v", err)
	}
	if len(sets) != 1 {
		t.Errorf("len(sets) = %d, want 1", len(sets))
	}
}
