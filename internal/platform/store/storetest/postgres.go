//go:build integration_pg

package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"newsfeed/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Postgres starts a disposable postgres container and opens a pgx store on it
func Postgres(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "feed",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("storetest: start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("storetest: container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("storetest: mapped port: %v", err)
	}

	cfg := store.Config{
		Driver: store.DriverPG,
		PG: store.PGConfig{
			URL:            fmt.Sprintf("postgres://postgres:postgres@%s:%s/feed?sslmode=disable", host, port.Port()),
			MaxConns:       2,
			ConnectRetries: 10,
		},
	}
	s, err := store.Open(ctx, cfg, opts...)
	if err != nil {
		t.Fatalf("storetest: open pg: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
