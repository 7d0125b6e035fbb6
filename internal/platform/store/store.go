// Package store provides a unified interface to the dedup database backends
package store

import (
	"context"
	"errors"
	"fmt"

	"newsfeed/internal/platform/logger"
)

// Driver names accepted by Config.Driver
const (
	DriverSQLite = "sqlite"
	DriverPG     = "pgx"
)

// Store is the facade for the configured sql backend
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// Driver is the backend behind DB
	Driver string

	// DB is the sql seam, nil when disabled
	DB TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
// statements use ? placeholders on every backend
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by the sql adapters
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open constructs a Store with the requested backend
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	switch cfg.Driver {
	case "", DriverSQLite:
		db, err := openLite(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.Driver, s.DB = DriverSQLite, db
	case DriverPG:
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.Driver, s.DB = DriverPG, db
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}

	return s, nil
}

// Guard verifies the configured seam answers a ping
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.DB.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Driver, err)
		}
	}
	return nil
}

// Close closes the backend gracefully; a nil backend is ignored
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
