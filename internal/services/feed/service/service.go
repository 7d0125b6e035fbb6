// Package service runs one ingest batch end to end
package service

import (
	"context"
	"time"

	"newsfeed/internal/platform/logger"
	"newsfeed/internal/services/feed/domain"
	"newsfeed/internal/services/feed/ingest"

	perr "newsfeed/internal/platform/errors"

	"github.com/google/uuid"
)

// Service wires the pipeline stages
type Service struct {
	Norm    domain.FieldNormalizer
	Build   domain.Builder
	Feed    domain.FeedStore
	Store   domain.DedupStore
	Analyze domain.Analyzer

	// NewRunID is a seam for tests
	NewRunID func() string
}

// New constructs the service; every stage is required
func New(n domain.FieldNormalizer, b domain.Builder, feed domain.FeedStore, st domain.DedupStore, an domain.Analyzer) *Service {
	if n == nil || b == nil {
		panic("feed.Service requires a normalizer and a builder")
	}
	if feed == nil || st == nil || an == nil {
		panic("feed.Service requires a feed file, a dedup store and an analyzer")
	}
	return &Service{Norm: n, Build: b, Feed: feed, Store: st, Analyze: an, NewRunID: uuid.NewString}
}

// Run reads src, builds publications, appends them to the feed, stores them
// with dedup and refreshes the analytics snapshots.
// Input errors return before anything is written
func (s *Service) Run(ctx context.Context, src domain.Source) (domain.Report, error) {
	rep := domain.Report{RunID: s.NewRunID(), Source: src.Name()}
	ctx = logger.WithRun(ctx, rep.RunID, rep.Source)
	log := logger.C(ctx)
	start := time.Now()

	raw, err := src.Records(ctx)
	if err != nil {
		log.Error().Err(err).Msg("feed: read source")
		return rep, err
	}
	rep.Records = len(raw)

	pubs, skipped, err := s.Build.BuildAll(ctx, ingest.NormalizeRecords(s.Norm, raw))
	rep.Skipped = skipped
	if err != nil {
		log.Error().Err(err).Msg("feed: build publications")
		return rep, err
	}
	rep.Built = len(pubs)
	log.Info().Int("records", rep.Records).Int("built", rep.Built).Int("skipped", skipped).Msg("feed: batch built")

	if rep.Appended, err = s.Feed.Save(ctx, pubs); err != nil {
		log.Error().Err(err).Msg("feed: append to feed file")
		return rep, err
	}

	if err := s.Store.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("feed: ensure schema")
		return rep, err
	}
	if rep.Inserted, rep.Deduped, err = s.Store.Save(ctx, pubs); err != nil {
		log.Error().Err(err).Int("inserted", rep.Inserted).Msg("feed: store publications")
		return rep, err
	}

	if err := s.analyze(ctx, &rep); err != nil {
		return rep, err
	}

	if rep.Counts, err = s.Store.Counts(ctx); err != nil {
		log.Warn().Err(err).Msg("feed: count rows")
	}
	log.Info().
		Int("appended", rep.Appended).
		Int("inserted", rep.Inserted).
		Int("deduped", rep.Deduped).
		Int64("news_rows", rep.Counts[domain.KindNews]).
		Int64("ad_rows", rep.Counts[domain.KindPrivateAd]).
		Int64("joke_rows", rep.Counts[domain.KindJoke]).
		Dur("elapsed", time.Since(start)).
		Msg("feed: run complete")
	return rep, nil
}

// analyze rescans the whole feed; a feed that was never written is skipped
func (s *Service) analyze(ctx context.Context, rep *domain.Report) error {
	log := logger.C(ctx)
	content, err := s.Feed.Content(ctx)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		log.Warn().Err(err).Msg("feed: no feed file, analytics skipped")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("feed: read feed file")
		return err
	}
	if rep.Words, rep.Letters, err = s.Analyze.Analyze(ctx, content); err != nil {
		log.Error().Err(err).Msg("feed: analytics")
		return err
	}
	return nil
}
