package store

import (
	"context"
	"sync"
)

// Deferred is a TxRunner that opens its Store on first use
// a batch that fails before touching the database never creates it
type Deferred struct {
	open func(context.Context) (*Store, error)

	mu  sync.Mutex
	s   *Store
	err error
}

// Defer wraps open; open runs at most once
func Defer(open func(context.Context) (*Store, error)) *Deferred {
	return &Deferred{open: open}
}

// OpenGuarded opens a Store and pings it, closing it again when the ping fails
func OpenGuarded(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s, err := Open(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Guard(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (d *Deferred) db(ctx context.Context) (TxRunner, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.s == nil && d.err == nil {
		d.s, d.err = d.open(ctx)
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.s.DB, nil
}

// Opened reports whether the Store has been opened
func (d *Deferred) Opened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s != nil
}

// Exec implements RowQuerier
func (d *Deferred) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	db, err := d.db(ctx)
	if err != nil {
		return nil, err
	}
	return db.Exec(ctx, sql, args...)
}

// Query implements RowQuerier
func (d *Deferred) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	db, err := d.db(ctx)
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, sql, args...)
}

// QueryRow implements RowQuerier; an open failure surfaces from Scan
func (d *Deferred) QueryRow(ctx context.Context, sql string, args ...any) Row {
	db, err := d.db(ctx)
	if err != nil {
		return errRow{err}
	}
	return db.QueryRow(ctx, sql, args...)
}

// Tx implements TxRunner
func (d *Deferred) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	db, err := d.db(ctx)
	if err != nil {
		return err
	}
	return db.Tx(ctx, fn)
}

// Close closes the Store if it was opened
func (d *Deferred) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.s == nil {
		return nil
	}
	return d.s.Close(ctx)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
