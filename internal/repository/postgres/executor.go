// internal/repository/postgres/executor.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	xerrors "gridiron-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// defaultCallTimeout bounds every store call. On expiry the call fails with a
// transport error, not a distinct kind.
const defaultCallTimeout = 30 * time.Second

// Executor issues stored-procedure and view calls against the backing store.
// It owns connection acquisition (one pooled connection per call, released on
// return) and result shaping, and knows nothing about the business meaning of
// its arguments. It holds no mutable state, so a single instance is shared by
// every repository.
type Executor struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	timeout time.Duration
}

func NewExecutor(pool *pgxpool.Pool, logger *zap.Logger) *Executor {
	return &Executor{pool: pool, logger: logger, timeout: defaultCallTimeout}
}

// RowMapper converts one result row into a value. An error from a mapper is
// surfaced as a mapping failure, never swallowed.
type RowMapper[T any] func(r *Record) (T, error)

// SetMapper is a RowMapper for one result set of a multi-set call.
type SetMapper func(r *Record) (any, error)

// ViewOptions narrows a view query. Where and OrderBy are concatenated into
// the statement unparameterized: callers are contractually responsible for
// passing only allow-listed fragments (see internal/pkg/filter), never
// request input.
type ViewOptions struct {
	Where   string
	OrderBy string
	Limit   int
}

// CallForOptionalRow executes a 0-or-1 row function and maps the first row.
// The second return is false when the call produced no rows; extra rows are
// ignored.
func CallForOptionalRow[T any](ctx context.Context, ex *Executor, name string, args []any, mapRow RowMapper[T]) (T, bool, error) {
	var zero T
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return zero, false, classify(name, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, callSQL(name, len(args)), args...)
	if err != nil {
		return zero, false, classify(name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, classify(name, err)
		}
		return zero, false, nil
	}
	rec, err := newRecord(rows)
	if err != nil {
		return zero, false, classify(name, err)
	}
	v, err := mapRow(rec)
	if err != nil {
		return zero, false, mappingError(name, err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return zero, false, classify(name, err)
	}
	return v, true, nil
}

// CallForRowList executes a set-returning function and maps every row of its
// single result set. The list may be empty, never nil on success.
func CallForRowList[T any](ctx context.Context, ex *Executor, name string, args []any, mapRow RowMapper[T]) ([]T, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return nil, classify(name, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, callSQL(name, len(args)), args...)
	if err != nil {
		return nil, classify(name, err)
	}
	defer rows.Close()

	return mapAll(name, rows, mapRow)
}

// CallWithOutputParams executes a function whose OUT parameters come back as
// the columns of a single row. On success it returns ok=true and a name→value
// map (NULL mapped to nil). A store-raised error yields ok=false with the
// store's own message; any other failure yields ok=false with a generic one.
func (ex *Executor) CallWithOutputParams(ctx context.Context, name string, args ...any) (bool, string, map[string]any) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return ex.outputFailure(name, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, callSQL(name, len(args)), args...)
	if err != nil {
		return ex.outputFailure(name, err)
	}
	defer rows.Close()

	out := map[string]any{}
	if rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return ex.outputFailure(name, err)
		}
		for i, fd := range rows.FieldDescriptions() {
			out[strings.ToLower(fd.Name)] = vals[i]
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return ex.outputFailure(name, err)
	}
	return true, "", out
}

func (ex *Executor) outputFailure(name string, err error) (bool, string, map[string]any) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false, pgErr.Message, nil
	}
	ex.logger.Error("output-parameter call failed",
		zap.String("procedure", name),
		zap.Error(err),
	)
	return false, "the operation could not be completed", nil
}

// CallForResultSets executes a function returning refcursors, one per result
// set, and drains them in order inside a single transaction. Mapper i maps
// set i; sets beyond the supplied mappers are still consumed and come back as
// empty lists rather than an error. A count mismatch is logged as a warning
// so schema drift stays visible.
func (ex *Executor) CallForResultSets(ctx context.Context, name string, args []any, mappers ...SetMapper) ([][]any, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return nil, classify(name, err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, classify(name, err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, callSQL(name, len(args)), args...)
	if err != nil {
		return nil, classify(name, err)
	}
	cursors, err := mapAll(name, rows, func(r *Record) (string, error) {
		for _, v := range r.values {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
		return "", fmt.Errorf("%s did not return cursor names", name)
	})
	if err != nil {
		return nil, err
	}

	if len(cursors) != len(mappers) {
		ex.logger.Warn("result-set count does not match supplied mappers",
			zap.String("procedure", name),
			zap.Int("result_sets", len(cursors)),
			zap.Int("mappers", len(mappers)),
		)
	}

	sets, err := collectSets(cursors, mappers, func(cursor string, m SetMapper) ([]any, error) {
		crows, err := tx.Query(ctx, "FETCH ALL FROM "+quoteIdent(cursor))
		if err != nil {
			return nil, classify(name, err)
		}
		if m == nil {
			crows.Close()
			return nil, crows.Err()
		}
		return mapAll(name, crows, RowMapper[any](m))
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(name, err)
	}
	return sets, nil
}

// collectSets drains every cursor in order. Cursors without a mapper are
// fetched and discarded, holding their slot as an empty list so the result
// length always equals the actual set count.
func collectSets(cursors []string, mappers []SetMapper, fetch func(cursor string, m SetMapper) ([]any, error)) ([][]any, error) {
	out := make([][]any, 0, len(cursors))
	for i, cursor := range cursors {
		var m SetMapper
		if i < len(mappers) {
			m = mappers[i]
		}
		set, err := fetch(cursor, m)
		if err != nil {
			return nil, err
		}
		if set == nil {
			set = []any{}
		}
		out = append(out, set)
	}
	return out, nil
}

// CallNonQuery executes a procedure with CALL and returns the statement's
// affected-row count.
func (ex *Executor) CallNonQuery(ctx context.Context, name string, args ...any) (int64, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return 0, classify(name, err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, "CALL "+name+placeholders(len(args)), args...)
	if err != nil {
		return 0, classify(name, err)
	}
	return tag.RowsAffected(), nil
}

// CallForCount executes an integer-returning function. Procedures whose
// contract is a row count are declared this way, since CALL reports none.
func (ex *Executor) CallForCount(ctx context.Context, name string, args ...any) (int64, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return 0, classify(name, err)
	}
	defer conn.Release()

	var n int64
	err = conn.QueryRow(ctx, "SELECT "+name+placeholders(len(args)), args...).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, classify(name, err)
	}
	return n, nil
}

// QueryView selects from a view with optional filter fragments. See
// ViewOptions for the trust contract on Where and OrderBy.
func QueryView[T any](ctx context.Context, ex *Executor, view string, mapRow RowMapper[T], opts ViewOptions) ([]T, error) {
	return QueryRaw(ctx, ex, buildSelect(view, opts), mapRow)
}

// QueryRaw executes parameterized text SQL and maps every row. The escape
// hatch for the handful of call sites views and procedures cannot express.
func QueryRaw[T any](ctx context.Context, ex *Executor, sqlText string, mapRow RowMapper[T], args ...any) ([]T, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return nil, classify(sqlText, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, classify(sqlText, err)
	}
	defer rows.Close()

	return mapAll(sqlText, rows, mapRow)
}

// ForMessage runs a 0-or-1 row function and extracts its "message" column,
// defaulting to a generic completion string when absent.
func (ex *Executor) ForMessage(ctx context.Context, name string, args ...any) (string, error) {
	msg, found, err := CallForOptionalRow(ctx, ex, name, args, func(r *Record) (string, error) {
		return r.String("message"), nil
	})
	if err != nil {
		return "", err
	}
	if !found || msg == "" {
		return "operation completed successfully", nil
	}
	return msg, nil
}

// Exists runs SELECT EXISTS against a table or view. The where fragment is
// under the same trust contract as ViewOptions.Where.
func (ex *Executor) Exists(ctx context.Context, table, where string) (bool, error) {
	ctx, cancel := ex.callContext(ctx)
	defer cancel()

	conn, err := ex.pool.Acquire(ctx)
	if err != nil {
		return false, classify(table, err)
	}
	defer conn.Release()

	var exists bool
	q := "SELECT EXISTS (SELECT 1 FROM " + table + " WHERE " + where + ")"
	if err := conn.QueryRow(ctx, q).Scan(&exists); err != nil {
		return false, classify(table, err)
	}
	return exists, nil
}

// ----- internals -----

func (ex *Executor) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, ex.timeout)
}

func mapAll[T any](op string, rows pgx.Rows, mapRow RowMapper[T]) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		rec, err := newRecord(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		v, err := mapRow(rec)
		if err != nil {
			return nil, mappingError(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// callSQL builds "SELECT * FROM name($1, ...)" for an n-argument function.
func callSQL(name string, n int) string {
	return "SELECT * FROM " + name + placeholders(n)
}

func placeholders(n int) string {
	if n == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	b.WriteByte(')')
	return b.String()
}

func buildSelect(view string, opts ViewOptions) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(view)
	if opts.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(opts.Where)
	}
	if opts.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(opts.OrderBy)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", opts.Limit)
	}
	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return xerrors.NewStoreError(xerrors.KindStore, op, pgErr.Message, err)
	}
	return xerrors.NewStoreError(xerrors.KindTransport, op, "database call failed", err)
}

func mappingError(op string, err error) error {
	return xerrors.NewStoreError(xerrors.KindMapping, op, err.Error(), err)
}
