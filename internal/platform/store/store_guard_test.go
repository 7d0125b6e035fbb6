package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// pingOnly is a TxRunner whose Ping result is canned
type pingOnly struct {
	TxRunner
	err error
}

func (p pingOnly) Ping(context.Context) error { return p.err }

func TestGuard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store should fail Guard")
	}
	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("store without seam: %v", err)
	}

	live := openTestStore(t)
	if err := live.Guard(ctx); err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}

	err := (&Store{Driver: DriverPG, DB: pingOnly{err: errors.New("refused")}}).Guard(ctx)
	if err == nil || !strings.HasPrefix(err.Error(), "pgx: ") {
		t.Fatalf("Guard error = %v, want pgx prefix", err)
	}
}

func TestGuard_AfterClose(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("Guard on a closed sqlite store should fail")
	}
}
