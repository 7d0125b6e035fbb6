package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDeferred_OpensOnFirstUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "publication.db")
	opens := 0
	d := Defer(func(ctx context.Context) (*Store, error) {
		opens++
		return OpenGuarded(ctx, Config{SQLite: SQLiteConfig{Path: path}})
	})
	t.Cleanup(func() { _ = d.Close(ctx) })

	if d.Opened() {
		t.Fatalf("opened before use")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("database file exists before first use")
	}

	if _, err := d.Exec(ctx, `CREATE TABLE joke_table (text TEXT)`); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	err := d.Tx(ctx, func(q RowQuerier) error {
		return ExecOne(ctx, q, `INSERT INTO joke_table (text) VALUES (?)`, "pun")
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	n, err := Scalar[int64](ctx, d, `SELECT COUNT(*) FROM joke_table`)
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
	if ok, err := Exists(ctx, d, `SELECT 1 FROM joke_table WHERE text = ?`, "pun"); err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if opens != 1 || !d.Opened() {
		t.Fatalf("opens = %d, want 1", opens)
	}
}

func TestDeferred_OpenErrorSticks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	boom := errors.New("no database")
	opens := 0
	d := Defer(func(context.Context) (*Store, error) {
		opens++
		return nil, boom
	})

	if _, err := d.Exec(ctx, "SELECT 1"); !errors.Is(err, boom) {
		t.Fatalf("Exec = %v", err)
	}
	if _, err := d.Query(ctx, "SELECT 1"); !errors.Is(err, boom) {
		t.Fatalf("Query = %v", err)
	}
	var one int
	if err := d.QueryRow(ctx, "SELECT 1").Scan(&one); !errors.Is(err, boom) {
		t.Fatalf("QueryRow = %v", err)
	}
	if err := d.Tx(ctx, func(RowQuerier) error { return nil }); !errors.Is(err, boom) {
		t.Fatalf("Tx = %v", err)
	}
	if opens != 1 {
		t.Fatalf("opens = %d, want 1", opens)
	}
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close on unopened store: %v", err)
	}
}
