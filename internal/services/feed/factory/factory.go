// Package factory turns normalized records into validated publications
package factory

import (
	"context"
	"time"

	perr "newsfeed/internal/platform/errors"
	"newsfeed/internal/platform/logger"
	pstrings "newsfeed/internal/platform/strings"
	ptime "newsfeed/internal/platform/time"
	"newsfeed/internal/platform/validate"
	"newsfeed/internal/services/feed/domain"
)

// Defaults used when the original program shipped them
const (
	DefaultCity            = "Great_City"
	DefaultHashtag         = "FunnyJoke"
	DefaultTextPlaceholder = "Here should be your text"
	MaxFunIndex            = 10
)

// Rand is the subset of math/rand/v2 the factory draws from
type Rand interface {
	IntN(n int) int
}

// Config carries the fill-in values for blank fields
type Config struct {
	DefaultCity     string
	DefaultHashtag  string
	TextPlaceholder string
}

// DefaultConfig returns the stock fill-ins
func DefaultConfig() Config {
	return Config{
		DefaultCity:     DefaultCity,
		DefaultHashtag:  DefaultHashtag,
		TextPlaceholder: DefaultTextPlaceholder,
	}
}

// Factory builds publications against an injected clock and random source
type Factory struct {
	clock ptime.Clock
	rand  Rand
	cfg   Config
}

// New constructs a Factory; blank config values fall back to the defaults
func New(clock ptime.Clock, rnd Rand, cfg Config) *Factory {
	if clock == nil || rnd == nil {
		panic("factory: nil clock or rand")
	}
	cfg.DefaultCity = pstrings.IfBlank(cfg.DefaultCity, DefaultCity)
	cfg.DefaultHashtag = pstrings.IfBlank(cfg.DefaultHashtag, DefaultHashtag)
	cfg.TextPlaceholder = pstrings.IfBlank(cfg.TextPlaceholder, DefaultTextPlaceholder)
	return &Factory{clock: clock, rand: rnd, cfg: cfg}
}

// Build dispatches on the exact Type value
// City and Hashtag are squashed to single spaces so the stored value, the
// dedup key and the rendered info line agree
func (f *Factory) Build(r domain.Record) (domain.Publication, error) {
	now := f.clock.Now()
	text := pstrings.IfBlank(r.Value(domain.KeyText), f.cfg.TextPlaceholder)

	var pub domain.Publication
	switch kind := domain.Kind(r.Value(domain.KeyType)); kind {
	case domain.KindNews:
		pub = domain.News{
			Text: text,
			City: pstrings.IfBlank(pstrings.Squash(r.Value(domain.KeyCity)), f.cfg.DefaultCity),
			Date: now.Format(domain.DateLayout),
			Time: now.Format(domain.TimeLayout),
		}
	case domain.KindPrivateAd:
		ad, err := f.privateAd(now, text, r.Value(domain.KeyExpirationDate))
		if err != nil {
			return nil, err
		}
		pub = ad
	case domain.KindJoke:
		pub = domain.Joke{
			Text:     text,
			Hashtag:  pstrings.IfBlank(pstrings.Squash(r.Value(domain.KeyHashtag)), f.cfg.DefaultHashtag),
			FunIndex: f.rand.IntN(MaxFunIndex) + 1,
		}
	default:
		return nil, perr.WithField(perr.UnrecognizedTypef("unrecognized publication type %q", kind), domain.KeyType)
	}

	if err := validate.Struct(pub); err != nil {
		return nil, perr.WithOp(err, "factory.build")
	}
	return pub, nil
}

func (f *Factory) privateAd(now time.Time, text, exp string) (domain.PrivateAd, error) {
	if pstrings.IsBlank(exp) {
		exp = now.AddDate(0, 0, 1).Format(domain.DateLayout)
	}
	d, err := domain.ParseDate(exp, now.Location())
	if err != nil {
		return domain.PrivateAd{}, err
	}
	return domain.PrivateAd{
		Text:           text,
		ExpirationDate: d.Format(domain.DateLayout),
		DaysLeft:       ptime.DaysBetween(now, d),
	}, nil
}

// BuildAll builds every record; unrecognized types are skipped and counted,
// any other failure aborts the batch
func (f *Factory) BuildAll(ctx context.Context, recs []domain.Record) ([]domain.Publication, int, error) {
	out := make([]domain.Publication, 0, len(recs))
	skipped := 0
	for i, r := range recs {
		pub, err := f.Build(r)
		switch {
		case err == nil:
			out = append(out, pub)
		case perr.IsCode(err, perr.ErrorCodeUnrecognizedType):
			skipped++
			logger.Named(ctx, "factory").Warn().Err(err).Int("record", i).Msg("factory: skipping record")
		default:
			return nil, skipped, perr.WithOp(err, "factory.build_all")
		}
	}
	return out, skipped, nil
}
