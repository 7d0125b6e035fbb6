package store

import (
	"context"
	"errors"
	"testing"
)

type fakeTag int64

func (t fakeTag) String() string      { return "INSERT" }
func (t fakeTag) RowsAffected() int64 { return int64(t) }

// fakeQuerier records the last statement and replays canned results
type fakeQuerier struct {
	sql  string
	args []any

	tag     CommandTag
	execErr error

	rows     Rows
	queryErr error

	scan func(dest ...any) error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.sql, f.args = sql, args
	return f.tag, f.execErr
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.sql, f.args = sql, args
	return f.rows, f.queryErr
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.sql, f.args = sql, args
	return scanFunc(f.scan)
}

type scanFunc func(dest ...any) error

func (s scanFunc) Scan(dest ...any) error { return s(dest...) }

type fakeRows struct {
	n      int
	err    error
	closed bool
}

func (r *fakeRows) Columns() []string { return []string{"one"} }
func (r *fakeRows) Next() bool {
	if r.n == 0 {
		return false
	}
	r.n--
	return true
}
func (r *fakeRows) Scan(...any) error { return nil }
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }

func TestExecOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	q := &fakeQuerier{tag: fakeTag(1)}
	if err := ExecOne(ctx, q, "INSERT INTO joke_table VALUES (?)", "x"); err != nil {
		t.Fatalf("ExecOne: %v", err)
	}
	if q.sql != "INSERT INTO joke_table VALUES (?)" || len(q.args) != 1 {
		t.Fatalf("statement not forwarded: %q %v", q.sql, q.args)
	}

	for _, n := range []int64{0, 2} {
		if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag(n)}, "q"); err == nil {
			t.Fatalf("expected error for %d rows", n)
		}
	}

	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQuerier{execErr: boom}, "q"); !errors.Is(err, boom) {
		t.Fatalf("exec error not propagated: %v", err)
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	q := &fakeQuerier{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = 7
		return nil
	}}
	n, err := Scalar[int64](ctx, q, "SELECT COUNT(*) FROM news_table")
	if err != nil || n != 7 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}

	boom := errors.New("scan")
	s, err := Scalar[string](ctx, &fakeQuerier{scan: func(...any) error { return boom }}, "q")
	if !errors.Is(err, boom) || s != "" {
		t.Fatalf("Scalar error = %q, %v", s, err)
	}
}

func TestExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hit := &fakeRows{n: 1}
	ok, err := Exists(ctx, &fakeQuerier{rows: hit}, "SELECT 1 FROM news_table WHERE text = ?", "x")
	if err != nil || !ok {
		t.Fatalf("Exists hit = %v, %v", ok, err)
	}
	if !hit.closed {
		t.Fatalf("rows not closed")
	}

	ok, err = Exists(ctx, &fakeQuerier{rows: &fakeRows{}}, "q")
	if err != nil || ok {
		t.Fatalf("Exists miss = %v, %v", ok, err)
	}

	if _, err := Exists(ctx, &fakeQuerier{rows: &fakeRows{err: errors.New("rows")}}, "q"); err == nil {
		t.Fatalf("expected rows error")
	}
	if _, err := Exists(ctx, &fakeQuerier{queryErr: errors.New("boom")}, "q"); err == nil {
		t.Fatalf("expected query error")
	}
}
