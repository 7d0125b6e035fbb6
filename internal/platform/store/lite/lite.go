// Package lite provides an embedded SQLite client on database/sql using the
// pure Go modernc.org/sqlite driver, with optional query tracing
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"newsfeed/internal/platform/store/trace"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql name registered by modernc.org/sqlite
const DriverName = "sqlite"

// Config configures the embedded database
type Config struct {
	// Path is the database file; ":memory:" keeps everything in process
	Path string
	// BusyTimeoutMs makes writers wait for a lock instead of failing at once
	BusyTimeoutMs int
	SlowMs        int
}

// Lite is a sqlite client with handle and optional tracer
type Lite struct {
	DB     *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// DSN builds the modernc connection string for cfg
func DSN(cfg Config) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeoutMs > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMs))
	}
	if cfg.Path == ":memory:" {
		return "file::memory:?" + q.Encode()
	}
	return "file:" + cfg.Path + "?" + q.Encode()
}

// Open creates the parent directory when needed and opens the database
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*Lite, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create dir: %w", err)
			}
		}
	}
	db, err := openDB(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serializes writes anyway and this keeps
	// :memory: databases on a single connection
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Lite{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
