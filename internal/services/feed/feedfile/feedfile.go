// Package feedfile appends rendered publications to the feed text file
package feedfile

import (
	"context"
	stderrs "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"newsfeed/internal/platform/logger"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// DefaultHeader is the first line of a fresh feed file
const DefaultHeader = "News feed:"

// Separator precedes every block
const Separator = "\n\n"

// File is an append-only feed; it never truncates what is already there
type File struct {
	path   string
	header string
	render domain.Renderer
}

// Open prepares a feed at path; the file itself is created on first Save
func Open(path, header string, r domain.Renderer) (*File, error) {
	if path == "" {
		return nil, perr.InvalidArgf("feedfile: empty path")
	}
	if r == nil {
		return nil, perr.InvalidArgf("feedfile: nil renderer")
	}
	if header == "" {
		header = DefaultHeader
	}
	return &File{path: path, header: header, render: r}, nil
}

// Path returns the feed location
func (f *File) Path() string { return f.path }

// Save appends one block per publication and returns how many were written
// The header is written first when the file is missing or empty
// On a write failure the count covers only blocks that reached the file whole
func (f *File) Save(ctx context.Context, pubs []domain.Publication) (int, error) {
	if len(pubs) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return 0, perr.IOf(err, "feedfile: create dir for %s", f.path)
	}
	fh, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return 0, perr.IOf(err, "feedfile: open %s", f.path)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			logger.Named(ctx, "feedfile").Error().Err(cerr).Str("path", f.path).Msg("feedfile: close")
		}
	}()

	st, err := fh.Stat()
	if err != nil {
		return 0, perr.IOf(err, "feedfile: stat %s", f.path)
	}

	n, err := f.appendBlocks(ctx, fh, st.Size() == 0, pubs)
	if err != nil {
		return n, err
	}
	logger.Named(ctx, "feedfile").Debug().Str("path", f.path).Int("blocks", n).Msg("feedfile: appended")
	return n, nil
}

// appendBlocks issues one write per block; the header rides with the first one
func (f *File) appendBlocks(ctx context.Context, w io.Writer, fresh bool, pubs []domain.Publication) (int, error) {
	prefix := ""
	if fresh {
		prefix = f.header
	}
	n := 0
	for _, p := range pubs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := io.WriteString(w, prefix+Separator+f.render.Render(p)); err != nil {
			return n, perr.IOf(err, "feedfile: write %s", f.path)
		}
		prefix = ""
		n++
	}
	return n, nil
}

// Content returns the whole feed; a missing file is ErrorCodeNotFound
func (f *File) Content(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		if stderrs.Is(err, fs.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "feedfile: %s not found", f.path)
		}
		return nil, perr.IOf(err, "feedfile: read %s", f.path)
	}
	return b, nil
}
