package store

import "newsfeed/internal/platform/config"

// Config aggregates per backend configuration
type Config struct {
	// Driver selects the backend: "sqlite" (default) or "pgx"
	Driver string

	// LogSQL traces every statement through the store logger
	LogSQL      bool
	SlowQueryMs int

	SQLite SQLiteConfig
	PG     PGConfig
}

// SQLiteConfig configures the embedded database file
type SQLiteConfig struct {
	Path          string
	BusyTimeoutMs int
}

// PGConfig configures postgres connectivity
type PGConfig struct {
	URL      string
	MaxConns int32

	// ConnectRetries bounds the boot ping loop
	ConnectRetries int
}

// ConfigFromEnv reads STORE_* style keys from c (already prefixed by the caller)
// base resolves a relative sqlite path
func ConfigFromEnv(c config.Conf, base string) Config {
	cfg := Config{
		Driver:      c.MayEnum("DRIVER", DriverSQLite, DriverSQLite, DriverPG),
		LogSQL:      c.MayBool("LOG_SQL", false),
		SlowQueryMs: c.MayInt("SLOW_MS", 200),
		SQLite: SQLiteConfig{
			Path:          c.MayPath("SQLITE_PATH", base, "publication.db"),
			BusyTimeoutMs: c.MayPositiveInt("SQLITE_BUSY_MS", 5000),
		},
	}
	if cfg.Driver == DriverPG {
		pg := c.Prefix("PGSQL_")
		cfg.PG = PGConfig{
			URL:            pg.MustString("DBURL"),
			MaxConns:       int32(pg.MayPositiveInt("MAX_CONNS", 4)),
			ConnectRetries: pg.MayPositiveInt("CONNECT_RETRIES", 20),
		}
	}
	return cfg
}
