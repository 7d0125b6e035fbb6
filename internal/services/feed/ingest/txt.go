package ingest

import (
	"bufio"
	"io"

	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
	pstrings "newsfeed/internal/platform/strings"
)

// txtParser reads "Title # Text # Extra #" lines
// Blank or short lines become records with empty fields
type txtParser struct{ norm domain.FieldNormalizer }

func (txtParser) Format() Format { return FormatTXT }

func (p txtParser) Decode(r io.Reader) ([]domain.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out []domain.Record
	for sc.Scan() {
		parts := pstrings.SplitPad(sc.Text(), "#", 3)
		title := p.norm.Text(parts[0])

		rec := domain.Record{
			{Key: domain.KeyType, Value: title},
			{Key: domain.KeyText, Value: parts[1]},
		}
		if k := domain.ExtraKey(domain.Kind(title)); k != "" {
			rec.Set(k, parts[2])
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidFormat, "txt: read lines")
	}
	return out, nil
}
