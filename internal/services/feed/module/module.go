// Package module wires the feed pipeline from deps and config
package module

import (
	"math/rand/v2"
	"os"

	"newsfeed/internal/core/normalize"
	"newsfeed/internal/modkit"
	"newsfeed/internal/services/feed/analytics"
	"newsfeed/internal/services/feed/domain"
	"newsfeed/internal/services/feed/factory"
	"newsfeed/internal/services/feed/feedfile"
	"newsfeed/internal/services/feed/render"
	"newsfeed/internal/services/feed/repo"
	"newsfeed/internal/services/feed/service"

	perr "newsfeed/internal/platform/errors"
	ptime "newsfeed/internal/platform/time"
)

// Name is the registry key of the feed module
const Name = "feed"

// Ports defines the feed module ports
type Ports struct {
	Runner     domain.RunnerPort
	Normalizer domain.FieldNormalizer
}

// Module implements the feed module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// Option adjusts the wiring, mostly for tests
type Option func(*wiring)

type wiring struct {
	clock ptime.Clock
	rand  factory.Rand
	base  string
}

// WithClock pins the clock used to stamp publications
func WithClock(c ptime.Clock) Option { return func(w *wiring) { w.clock = c } }

// WithRand injects the fun index source
func WithRand(r factory.Rand) Option { return func(w *wiring) { w.rand = r } }

// WithBaseDir resolves relative NEWSFEED_ paths against dir instead of the working directory
func WithBaseDir(dir string) Option { return func(w *wiring) { w.base = dir } }

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// New constructs the feed module from deps.Cfg; deps.DB must be open
func New(deps modkit.Deps, opts ...Option) (*Module, error) {
	if deps.DB == nil {
		return nil, perr.InvalidArgf("feed module: nil DB")
	}
	w := wiring{clock: ptime.System(), rand: globalRand{}}
	for _, o := range opts {
		o(&w)
	}
	if w.base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, perr.IOf(err, "feed module: working directory")
		}
		w.base = wd
	}
	o := FromConfig(deps.Cfg, w.base)

	norm := normalize.New()
	rdr := render.New(o.MaxLength)
	feed, err := feedfile.Open(o.FeedPath, o.FeedHeader, rdr)
	if err != nil {
		return nil, err
	}
	an, err := analytics.New(o.WordsPath, o.LettersPath)
	if err != nil {
		return nil, err
	}
	st := repo.NewDedupStore(deps.DB, repo.NewSQL())

	svc := service.New(norm, factory.New(w.clock, w.rand, o.Factory), feed, st, an)

	deps.Log.Debug().
		Str("feed", o.FeedPath).
		Str("words", o.WordsPath).
		Str("letters", o.LettersPath).
		Int("max_length", o.MaxLength).
		Msg("feed module wired")

	return &Module{deps: deps, opts: o, ports: Ports{Runner: svc, Normalizer: norm}}, nil
}

// Name returns the module name
func (m *Module) Name() string { return Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved settings
func (m *Module) Options() Options { return m.opts }
