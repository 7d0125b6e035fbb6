package ingest

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// jsonParser reads one array of flat objects, keeping key order
type jsonParser struct{}

func (jsonParser) Format() Format { return FormatJSON }

func (jsonParser) Decode(r io.Reader) ([]domain.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var out []domain.Record
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return out, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidFormat, "json: decode")
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return perr.InvalidFormatf("json: expected %q, got %v", want, tok)
	}
	return nil
}

func decodeObject(dec *json.Decoder) (domain.Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var rec domain.Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidFormat, "json: decode key")
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidFormat, "json: decode value")
		}
		rec.Set(key, jsonString(raw))
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return rec, nil
}

// jsonString renders a scalar as text; null is empty and nested values stay compact JSON
func jsonString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "null":
		return ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return s
}
