package domain

import "context"

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context, src Source) (Report, error)
}

// Source produces raw records for one run
type Source interface {
	// Name is used in logs, e.g. the input path or "console"
	Name() string
	Records(ctx context.Context) ([]Record, error)
}

// FieldNormalizer normalizes record keys and values
type FieldNormalizer interface {
	Text(s string) string
	Key(s string) string
}

// Builder turns normalized records into publications
// The int result counts records skipped for an unrecognized type
type Builder interface {
	BuildAll(ctx context.Context, recs []Record) ([]Publication, int, error)
}

// Renderer lays out a publication as its feed block
type Renderer interface {
	Render(p Publication) string
}

// FeedStore is the append-only rendered feed
type FeedStore interface {
	Save(ctx context.Context, pubs []Publication) (int, error)
	Content(ctx context.Context) ([]byte, error)
}

// Analyzer recomputes the analytics snapshots from the feed content
type Analyzer interface {
	Analyze(ctx context.Context, content []byte) (words, letters int, err error)
}

// PublicationRepo is the tx-bound relational surface
type PublicationRepo interface {
	EnsureSchema(ctx context.Context) error
	Exists(ctx context.Context, k DedupKey) (bool, error)
	Insert(ctx context.Context, p Publication) error
	Counts(ctx context.Context) (TableCounts, error)
}

// DedupStore persists publications, skipping ones already stored
type DedupStore interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, pubs []Publication) (inserted, deduped int, err error)
	Counts(ctx context.Context) (TableCounts, error)
}
