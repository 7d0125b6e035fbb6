// Command newsfeed-ingest reads one batch of publications, appends them to
// the feed file, stores them with dedup and refreshes the analytics CSVs
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"newsfeed/internal/core/version"
	"newsfeed/internal/modkit"
	"newsfeed/internal/modkit/module"
	"newsfeed/internal/platform/config"
	"newsfeed/internal/platform/logger"
	"newsfeed/internal/platform/store"
	"newsfeed/internal/services/feed/domain"
	"newsfeed/internal/services/feed/ingest"

	perr "newsfeed/internal/platform/errors"
	feedmod "newsfeed/internal/services/feed/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("newsfeed-ingest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fFormat  = fs.String("format", "", "input format: console | txt | json | xml | yaml (default: from -in extension, else console)")
		fIn      = fs.String("in", "", "input file path (required for file formats)")
		fKeep    = fs.Bool("keep", false, "keep the input file after a successful run")
		fEnv     = fs.String("env", ".env", "dotenv file loaded before reading config")
		fVersion = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *fVersion {
		_, _ = fmt.Fprintln(stdout, version.Info().String())
		return 0
	}

	if err := config.LoadDotenv(*fEnv); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: load %s: %v\n", *fEnv, err)
		return 1
	}
	l := logger.Get()

	format, err := resolveFormat(*fFormat, *fIn)
	if err == nil && format.File() {
		err = ingest.CheckSource(format, *fIn)
	}
	if err != nil {
		return fail(ctx, stderr, err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fail(ctx, stderr, perr.IOf(err, "working directory"))
	}
	root := config.New()

	// the store opens on first use so parse and build errors leave no database behind
	cfg := store.ConfigFromEnv(root.Prefix("STORE_"), cwd)
	st := store.Defer(func(ctx context.Context) (*store.Store, error) {
		return store.OpenGuarded(ctx, cfg, store.WithLogger(*l))
	})
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	mod, err := feedmod.New(modkit.Deps{Log: *l, Cfg: root, DB: st})
	if err != nil {
		return fail(ctx, stderr, err)
	}
	module.Register(mod.Name(), mod.Ports())
	ports, ok := module.PortsAs[feedmod.Ports](feedmod.Name)
	if !ok {
		ports = module.MustPortsOf[feedmod.Ports](mod)
	}

	var src domain.Source
	if format.File() {
		if src, err = ingest.NewFileSource(format, *fIn, ports.Normalizer); err != nil {
			return fail(ctx, stderr, err)
		}
	} else {
		src = ingest.NewConsole(stdin, stdout, nil)
	}

	rep, err := ports.Runner.Run(ctx, src)
	if err != nil {
		return fail(ctx, stderr, err)
	}

	if format.File() && !*fKeep {
		if err := os.Remove(*fIn); err != nil {
			l.Warn().Err(err).Str("path", *fIn).Msg("could not delete processed input")
		} else {
			l.Info().Str("path", *fIn).Msg("processed input deleted")
		}
	}

	_, _ = fmt.Fprintf(stdout,
		"%d publications added to %s: %d stored, %d duplicates, %d skipped\n",
		rep.Appended, mod.Options().FeedPath, rep.Inserted, rep.Deduped, rep.Skipped)
	return 0
}

// resolveFormat prefers -format, then the -in extension, then the console
func resolveFormat(name, path string) (ingest.Format, error) {
	if name != "" {
		f, err := ingest.ParseFormat(name)
		if err != nil {
			return "", err
		}
		if f.File() && path == "" {
			return "", perr.WithField(perr.InvalidArgf("-in is required for format %s", f), "in")
		}
		return f, nil
	}
	if path == "" {
		return ingest.FormatConsole, nil
	}
	f, ok := ingest.FormatFromPath(path)
	if !ok {
		return "", perr.WithField(perr.InvalidFormatf("cannot tell the format of %s; pass -format", path), "in")
	}
	return f, nil
}

func fail(ctx context.Context, stderr io.Writer, err error) int {
	code := perr.ExitCode(err)
	ev := logger.C(ctx).Error().Err(err).Str("code", perr.CodeOf(err).String()).Int("exit", code)
	if e, ok := perr.As(err); ok {
		if op := e.Op(); op != "" {
			ev = ev.Str("op", op)
		}
		if f := e.Field(); f != "" {
			ev = ev.Str("field", f)
		}
	}
	ev.Msg("newsfeed-ingest failed")
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	return code
}
