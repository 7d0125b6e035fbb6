package store

import (
	"context"

	"newsfeed/internal/platform/store/lite"
	"newsfeed/internal/platform/store/pg"
	"newsfeed/internal/platform/store/trace"
)

func tracerFor(cfg Config, s *Store, component string) trace.QueryTracer {
	if !cfg.LogSQL {
		return nil
	}
	return trace.Tracer(s.Log, component)
}

// openLite opens the embedded database and wraps it with our sql adapter
func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := lite.Open(ctx, lite.Config{
		Path:          cfg.SQLite.Path,
		BusyTimeoutMs: cfg.SQLite.BusyTimeoutMs,
		SlowMs:        cfg.SlowQueryMs,
	}, tracerFor(cfg, s, "sqlite"))
	if err != nil {
		return nil, err
	}
	return newLiteAdapter(l), nil
}

// openPG opens pg, waits for the server and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, tracerFor(cfg, s, "pg"))
	if err != nil {
		return nil, err
	}
	if err := p.WaitReady(ctx, cfg.PG.ConnectRetries, s.Log); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}
