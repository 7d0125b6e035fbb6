package pg

import (
	"context"
	"errors"
	"testing"

	"newsfeed/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const dsn = "postgres://feed:feed@db:5432/newsfeed?sslmode=disable"

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_PoolConfig(t *testing.T) {
	testkit.Serial(t)

	var got *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		got = c
		return &pgxpool.Pool{}, nil
	})

	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 3, SlowMs: 50}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.MaxConns != 3 {
		t.Fatalf("MaxConns = %d, want 3", got.MaxConns)
	}
	if got.ConnConfig.RuntimeParams["application_name"] != AppName {
		t.Fatalf("application_name = %q", got.ConnConfig.RuntimeParams["application_name"])
	}
	if p.SlowMs != 50 || p.Pool == nil {
		t.Fatalf("PG = %+v", p)
	}

	// an explicit application_name in the url wins
	if _, err := Open(context.Background(), Config{URL: dsn + "&application_name=ops"}, nil); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got.ConnConfig.RuntimeParams["application_name"] != "ops" {
		t.Fatalf("application_name overridden: %q", got.ConnConfig.RuntimeParams["application_name"])
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: dsn}, nil); err == nil {
		t.Fatalf("expected newPool error")
	}
}

func TestWaitReady(t *testing.T) {
	testkit.Serial(t)

	calls := 0
	testkit.Swap(t, &ping, func(context.Context, *PG) error {
		calls++
		if calls < 2 {
			return errors.New("starting up")
		}
		return nil
	})
	if err := (&PG{}).WaitReady(context.Background(), 5, zerolog.Nop()); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if calls != 2 {
		t.Fatalf("ping calls = %d, want 2", calls)
	}

	calls = 0
	testkit.Swap(t, &ping, func(context.Context, *PG) error {
		calls++
		return errors.New("down")
	})
	if err := (&PG{}).WaitReady(context.Background(), 2, zerolog.Nop()); err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if calls != 2 {
		t.Fatalf("ping calls = %d, want 2", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (&PG{}).WaitReady(ctx, 3, zerolog.Nop()); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled WaitReady = %v", err)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
