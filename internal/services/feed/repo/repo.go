// Package repo provides relational access for stored publications.
// Statements use ? placeholders; the store rebinds them for Postgres
package repo

import (
	"context"
	"fmt"

	"newsfeed/internal/modkit/repokit"
	"newsfeed/internal/platform/store"
	"newsfeed/internal/services/feed/domain"
)

type (
	// SQL is a binder for domain.PublicationRepo over either store backend
	SQL     struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQL returns a binder for domain.PublicationRepo
func NewSQL() repokit.Binder[domain.PublicationRepo] { return SQL{} }

// Bind implements repokit.Binder
func (SQL) Bind(q repokit.Queryer) domain.PublicationRepo { return &queries{q: q} }

// Table names per variant
var tables = map[domain.Kind]string{
	domain.KindNews:      "news_table",
	domain.KindPrivateAd: "private_ad",
	domain.KindJoke:      "joke_table",
}

// date and time are quoted so Postgres accepts them as column names
var schema = []string{
	`CREATE TABLE IF NOT EXISTS news_table (
		type   TEXT NOT NULL,
		text   TEXT NOT NULL,
		city   TEXT NOT NULL,
		"date" TEXT NOT NULL,
		"time" TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS private_ad (
		type            TEXT NOT NULL,
		text            TEXT NOT NULL,
		expiration_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS joke_table (
		type      TEXT    NOT NULL,
		text      TEXT    NOT NULL,
		hashtag   TEXT    NOT NULL,
		fun_index INTEGER NOT NULL CHECK (fun_index BETWEEN 1 AND 10)
	)`,
}

// EnsureSchema creates the three tables if absent; no migrations
func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Exists matches the exact dedup tuple
func (r *queries) Exists(ctx context.Context, k domain.DedupKey) (bool, error) {
	var sql string
	switch k.Kind {
	case domain.KindNews:
		sql = `SELECT 1 FROM news_table WHERE type = ? AND text = ? AND city = ? LIMIT 1`
	case domain.KindPrivateAd:
		sql = `SELECT 1 FROM private_ad WHERE type = ? AND text = ? AND expiration_date = ? LIMIT 1`
	case domain.KindJoke:
		sql = `SELECT 1 FROM joke_table WHERE type = ? AND text = ? AND hashtag = ? LIMIT 1`
	default:
		return false, fmt.Errorf("repo: no table for kind %q", k.Kind)
	}
	return store.Exists(ctx, r.q, sql, string(k.Kind), k.Text, k.Discriminator)
}

// Insert writes one row; callers check Exists first in the same tx
func (r *queries) Insert(ctx context.Context, p domain.Publication) error {
	switch v := p.(type) {
	case domain.News:
		return store.ExecOne(ctx, r.q,
			`INSERT INTO news_table (type, text, city, "date", "time") VALUES (?, ?, ?, ?, ?)`,
			string(v.Kind()), v.Text, v.City, v.Date, v.Time)
	case domain.PrivateAd:
		return store.ExecOne(ctx, r.q,
			`INSERT INTO private_ad (type, text, expiration_date) VALUES (?, ?, ?)`,
			string(v.Kind()), v.Text, v.ExpirationDate)
	case domain.Joke:
		return store.ExecOne(ctx, r.q,
			`INSERT INTO joke_table (type, text, hashtag, fun_index) VALUES (?, ?, ?, ?)`,
			string(v.Kind()), v.Text, v.Hashtag, v.FunIndex)
	}
	return fmt.Errorf("repo: unsupported publication %T", p)
}

// Counts returns the row count of every table
func (r *queries) Counts(ctx context.Context) (domain.TableCounts, error) {
	out := make(domain.TableCounts, len(tables))
	for _, k := range domain.Kinds {
		n, err := store.Scalar[int64](ctx, r.q, "SELECT COUNT(*) FROM "+tables[k])
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}
