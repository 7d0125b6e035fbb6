package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"newsfeed/internal/platform/store/lite"
	"newsfeed/internal/platform/store/trace"
)

// liteAdapter wraps lite.Lite and implements RowQuerier + TxRunner
type liteAdapter struct {
	l *lite.Lite
}

func newLiteAdapter(l *lite.Lite) *liteAdapter { return &liteAdapter{l: l} }

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := liteTxQuerier{tx: tx, tracer: a.l.Tracer, slowMs: a.l.SlowMs}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the statement surface shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c sqlConn, tr trace.QueryTracer, slowMs int, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	emit(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return liteTag{}, err
	}
	n, _ := res.RowsAffected()
	return liteTag{n: n}, nil
}

func liteQuery(ctx context.Context, c sqlConn, tr trace.QueryTracer, slowMs int, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	emit(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c sqlConn, tr trace.QueryTracer, slowMs int, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return liteRow{
		r: r,
		after: func(scanErr error) {
			emit(ctx, tr, slowMs, q, args, start, scanErr)
		},
	}
}

// adapters for database/sql to our tiny Row/Rows/CommandTag

type liteRow struct {
	r     *sql.Row
	after func(error)
}

func (x liteRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type liteRows struct {
	r    *sql.Rows
	cols []string
}

func (x *liteRows) Next() bool            { return x.r.Next() }
func (x *liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *liteRows) Err() error            { return x.r.Err() }
func (x *liteRows) Close()                { _ = x.r.Close() }
func (x *liteRows) Columns() []string {
	if x.cols == nil {
		x.cols, _ = x.r.Columns()
	}
	return x.cols
}

// liteTag renders like a pg command tag tail so RowsAffected parsing stays uniform
type liteTag struct{ n int64 }

func (t liteTag) String() string      { return "OK " + strconv.FormatInt(t.n, 10) }
func (t liteTag) RowsAffected() int64 { return t.n }

// liteTxQuerier uses *sql.Tx to satisfy RowQuerier inside a Tx
type liteTxQuerier struct {
	tx     *sql.Tx
	tracer trace.QueryTracer
	slowMs int
}

func (t liteTxQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t liteTxQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t liteTxQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.tracer, t.slowMs, q, args)
}
