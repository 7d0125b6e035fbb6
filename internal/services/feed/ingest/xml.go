package ingest

import (
	"encoding/xml"
	"io"
	"strings"

	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// xmlDoc matches any root element holding Publication children
type xmlDoc struct {
	Publications []xmlPublication `xml:"Publication"`
}

type xmlPublication struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlParser struct{}

func (xmlParser) Format() Format { return FormatXML }

func (xmlParser) Decode(r io.Reader) ([]domain.Record, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidFormat, "xml: decode")
	}
	out := make([]domain.Record, 0, len(doc.Publications))
	for _, p := range doc.Publications {
		var rec domain.Record
		for _, f := range p.Fields {
			rec.Set(f.XMLName.Local, strings.TrimSpace(f.Value))
		}
		out = append(out, rec)
	}
	return out, nil
}
