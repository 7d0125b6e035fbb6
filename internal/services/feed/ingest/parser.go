package ingest

import (
	"context"
	stderrs "errors"
	"io"
	"io/fs"
	"os"

	"newsfeed/internal/platform/logger"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// Parser decodes one input format into raw records
type Parser interface {
	Format() Format
	Decode(r io.Reader) ([]domain.Record, error)
}

// ParserFor returns the parser for a file format
// The txt parser needs n to recognize titles
func ParserFor(f Format, n domain.FieldNormalizer) (Parser, error) {
	switch f {
	case FormatTXT:
		if n == nil {
			return nil, perr.InvalidArgf("ingest: txt parser needs a normalizer")
		}
		return txtParser{norm: n}, nil
	case FormatJSON:
		return jsonParser{}, nil
	case FormatXML:
		return xmlParser{}, nil
	case FormatYAML:
		return yamlParser{}, nil
	}
	return nil, perr.InvalidFormatf("ingest: no file parser for format %q", f)
}

// CheckSource verifies path exists and carries an extension f accepts
func CheckSource(f Format, path string) error {
	st, err := os.Stat(path)
	if err != nil {
		if stderrs.Is(err, fs.ErrNotExist) {
			return perr.WithField(perr.SourceNotFoundf("file %s does not exist", path), "path")
		}
		return perr.IOf(err, "stat %s", path)
	}
	if st.IsDir() {
		return perr.WithField(perr.SourceNotFoundf("%s is a directory", path), "path")
	}
	if !f.Matches(path) {
		return perr.WithField(perr.InvalidFormatf("file %s is not a %s file", path, f), "path")
	}
	return nil
}

// Parse checks and decodes one input file
func Parse(ctx context.Context, p Parser, path string) ([]domain.Record, error) {
	if err := CheckSource(p.Format(), path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, perr.IOf(err, "open %s", path)
	}
	defer func() { _ = fh.Close() }()

	recs, err := p.Decode(fh)
	if err != nil {
		return nil, perr.WithOp(err, "ingest."+string(p.Format()))
	}
	logger.C(ctx).Debug().Str("format", string(p.Format())).Int("records", len(recs)).Msg("ingest: decoded")
	return recs, nil
}

// FileSource reads records from one input file
type FileSource struct {
	Path   string
	Parser Parser
}

// NewFileSource resolves the parser for f
func NewFileSource(f Format, path string, n domain.FieldNormalizer) (*FileSource, error) {
	p, err := ParserFor(f, n)
	if err != nil {
		return nil, err
	}
	return &FileSource{Path: path, Parser: p}, nil
}

// Name implements domain.Source
func (s *FileSource) Name() string { return s.Path }

// Records implements domain.Source
func (s *FileSource) Records(ctx context.Context) ([]domain.Record, error) {
	return Parse(ctx, s.Parser, s.Path)
}

// NormalizeRecords passes every key and value through n, keeping order
func NormalizeRecords(n domain.FieldNormalizer, recs []domain.Record) []domain.Record {
	out := make([]domain.Record, len(recs))
	for i, r := range recs {
		nr := make(domain.Record, 0, len(r))
		for _, f := range r {
			nr.Set(n.Key(f.Key), n.Text(f.Value))
		}
		out[i] = nr
	}
	return out
}
