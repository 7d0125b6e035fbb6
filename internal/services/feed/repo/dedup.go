package repo

import (
	"context"
	"time"

	"newsfeed/internal/modkit/repokit"
	"newsfeed/internal/platform/logger"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// DedupStore saves publications one transaction at a time, skipping exact duplicates
// A failure leaves earlier inserts committed
type DedupStore struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.PublicationRepo]
}

// NewDedupStore panics on nil wiring
func NewDedupStore(db repokit.TxRunner, b repokit.Binder[domain.PublicationRepo]) *DedupStore {
	if db == nil {
		panic("repo: nil db")
	}
	if b == nil {
		panic("repo: nil binder")
	}
	return &DedupStore{db: db, binder: b}
}

// EnsureSchema creates missing tables in one tx
func (s *DedupStore) EnsureSchema(ctx context.Context) error {
	err := repokit.WithTxBound(ctx, s.db, s.binder, func(r domain.PublicationRepo) error {
		return r.EnsureSchema(ctx)
	})
	return perr.WithOp(perr.FromDB(err, "ensure schema"), "repo.ensure_schema")
}

// Save implements domain.DedupStore
func (s *DedupStore) Save(ctx context.Context, pubs []domain.Publication) (inserted, deduped int, err error) {
	for _, p := range pubs {
		if err := ctx.Err(); err != nil {
			return inserted, deduped, err
		}
		k := p.DedupKey()
		added, err := s.saveOne(ctx, p, k)
		if err != nil {
			return inserted, deduped, perr.WithOp(perr.FromDB(err, "save "+string(k.Kind)), "repo.save")
		}
		if added {
			inserted++
		} else {
			deduped++
			logger.Named(ctx, "repo").Debug().Str("kind", string(k.Kind)).Msg("repo: duplicate skipped")
		}
	}
	return inserted, deduped, nil
}

// transient lock or serialization failures retry the whole tx
var (
	saveAttempts = 3
	saveBackoff  = 50 * time.Millisecond
)

func (s *DedupStore) saveOne(ctx context.Context, p domain.Publication, k domain.DedupKey) (bool, error) {
	var (
		added bool
		err   error
	)
	for attempt := 1; ; attempt++ {
		added = false
		err = repokit.WithTxBound(ctx, s.db, s.binder, func(r domain.PublicationRepo) error {
			found, err := r.Exists(ctx, k)
			if err != nil || found {
				return err
			}
			added = true
			return r.Insert(ctx, p)
		})
		if err == nil || attempt >= saveAttempts || !perr.Retryable(err) {
			return added, err
		}
		logger.Named(ctx, "repo").Warn().Err(err).Int("attempt", attempt).Str("kind", string(k.Kind)).Msg("repo: retrying save")
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(time.Duration(attempt) * saveBackoff):
		}
	}
}

// Counts implements domain.DedupStore
func (s *DedupStore) Counts(ctx context.Context) (domain.TableCounts, error) {
	c, err := repokit.MustBind(s.binder, s.db).Counts(ctx)
	if err != nil {
		return nil, perr.WithOp(perr.FromDB(err, "count rows"), "repo.counts")
	}
	return c, nil
}
