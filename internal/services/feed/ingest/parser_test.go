package ingest

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"newsfeed/internal/core/normalize"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
	kit "newsfeed/internal/platform/testkit"
)

func parseFile(t *testing.T, f Format, name, content string) []domain.Record {
	t.Helper()
	path := kit.WriteFile(t, t.TempDir(), name, content)
	src, err := NewFileSource(f, path, normalize.New())
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	recs, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records(%s): %v", name, err)
	}
	return recs
}

func TestTXT(t *testing.T) {
	t.Parallel()

	in := "news # hello world # london #\n" +
		"\n" +
		"PRIVATE_AD#sell bike#2030/01/01\n" +
		"joke # why? #\n" +
		"poem # roses #red\n"
	got := parseFile(t, FormatTXT, "in.txt", in)

	want := []domain.Record{
		domain.NewRecord("Type", "News", "Text", "hello world", "City", "london"),
		domain.NewRecord("Type", "", "Text", ""),
		domain.NewRecord("Type", "Private_ad", "Text", "sell bike", "Expiration_date", "2030/01/01"),
		domain.NewRecord("Type", "Joke", "Text", "why?", "Hashtag", ""),
		domain.NewRecord("Type", "Poem", "Text", "roses"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("txt records\n got %+v\nwant %+v", got, want)
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	in := `[
	  {"Type": "news", "Text": "a", "City": "Paris"},
	  {"Text": "b", "Type": "Joke", "Hashtag": null, "Extra": 12.5, "Flag": true, "Nested": {"a": [1, 2]}}
	]`
	got := parseFile(t, FormatJSON, "in.json", in)
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if keys := got[1].Keys(); !reflect.DeepEqual(keys, []string{"Text", "Type", "Hashtag", "Extra", "Flag", "Nested"}) {
		t.Fatalf("key order = %v", keys)
	}
	for k, v := range map[string]string{"Hashtag": "", "Extra": "12.5", "Flag": "true", "Nested": `{"a":[1,2]}`} {
		if got[1].Value(k) != v {
			t.Fatalf("%s = %q, want %q", k, got[1].Value(k), v)
		}
	}
	if got[0].Value("City") != "Paris" {
		t.Fatalf("City = %q", got[0].Value("City"))
	}
}

func TestJSON_RejectsNonArray(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"Type": "News"}`, `[1, 2]`, `[{"Type": "News"`, ``} {
		p, _ := ParserFor(FormatJSON, nil)
		_, err := p.Decode(strings.NewReader(in))
		if !perr.IsCode(err, perr.ErrorCodeInvalidFormat) {
			t.Fatalf("Decode(%q) err = %v, want invalid_format", in, err)
		}
	}
}

func TestXML(t *testing.T) {
	t.Parallel()

	in := `<?xml version="1.0"?>
<Publications>
  <Publication>
    <Type>News</Type>
    <Text> Rain again </Text>
    <City>Oslo</City>
  </Publication>
  <Publication>
    <Type>Private_ad</Type>
    <Text>Bike</Text>
    <Expiration_date>2030/05/05</Expiration_date>
  </Publication>
  <Other><Type>Joke</Type></Other>
</Publications>`
	got := parseFile(t, FormatXML, "in.xml", in)
	want := []domain.Record{
		domain.NewRecord("Type", "News", "Text", "Rain again", "City", "Oslo"),
		domain.NewRecord("Type", "Private_ad", "Text", "Bike", "Expiration_date", "2030/05/05"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("xml records\n got %+v\nwant %+v", got, want)
	}

	p, _ := ParserFor(FormatXML, nil)
	if _, err := p.Decode(strings.NewReader("<Publications><Publication>")); !perr.IsCode(err, perr.ErrorCodeInvalidFormat) {
		t.Fatalf("broken xml err = %v", err)
	}
}

func TestYAML(t *testing.T) {
	t.Parallel()

	in := `- Type: joke
  Text: knock knock
  Hashtag: ~
- Type: News
  City: Rome
  Text: 42
`
	got := parseFile(t, FormatYAML, "in.yml", in)
	want := []domain.Record{
		domain.NewRecord("Type", "joke", "Text", "knock knock", "Hashtag", ""),
		domain.NewRecord("Type", "News", "City", "Rome", "Text", "42"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("yaml records\n got %+v\nwant %+v", got, want)
	}

	p, _ := ParserFor(FormatYAML, nil)
	if _, err := p.Decode(strings.NewReader("Type: News\n")); !perr.IsCode(err, perr.ErrorCodeInvalidFormat) {
		t.Fatalf("mapping root err = %v", err)
	}
	if recs, err := p.Decode(strings.NewReader("")); err != nil || len(recs) != 0 {
		t.Fatalf("empty yaml = %v, %v", recs, err)
	}
}

func TestCheckSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	json := kit.WriteFile(t, dir, "in.json", "[]")

	if err := CheckSource(FormatJSON, json); err != nil {
		t.Fatalf("CheckSource ok: %v", err)
	}
	if err := CheckSource(FormatJSON, filepath.Join(dir, "missing.json")); !perr.IsCode(err, perr.ErrorCodeSourceNotFound) {
		t.Fatalf("missing err = %v", err)
	}
	if err := CheckSource(FormatJSON, dir); !perr.IsCode(err, perr.ErrorCodeSourceNotFound) {
		t.Fatalf("dir err = %v", err)
	}
	if err := CheckSource(FormatXML, json); !perr.IsCode(err, perr.ErrorCodeInvalidFormat) {
		t.Fatalf("mismatch err = %v", err)
	}
	if perr.ExitCode(CheckSource(FormatXML, json)) != 2 {
		t.Fatal("format mismatch should exit 2")
	}
}

func TestParse_DoesNotTouchInput(t *testing.T) {
	t.Parallel()

	path := kit.WriteFile(t, t.TempDir(), "in.txt", "news#a#b\n")
	src, err := NewFileSource(FormatTXT, path, normalize.New())
	if err != nil {
		t.Fatal(err)
	}
	if src.Name() != path {
		t.Fatalf("Name = %q", src.Name())
	}
	if _, err := src.Records(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("input should still exist: %v", err)
	}
}

func TestParserFor(t *testing.T) {
	t.Parallel()

	if _, err := ParserFor(FormatTXT, nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("txt without normalizer err = %v", err)
	}
	if _, err := ParserFor(FormatConsole, nil); !perr.IsCode(err, perr.ErrorCodeInvalidFormat) {
		t.Fatalf("console err = %v", err)
	}
	for _, f := range []Format{FormatTXT, FormatJSON, FormatXML, FormatYAML} {
		p, err := ParserFor(f, normalize.New())
		if err != nil || p.Format() != f {
			t.Fatalf("ParserFor(%s) = %v, %v", f, p, err)
		}
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("csv"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("csv err = %v", err)
	}
	if f, ok := FormatFromPath("/x/feed.YML"); !ok || f != FormatYAML {
		t.Fatalf("FormatFromPath = %q, %v", f, ok)
	}
	if _, ok := FormatFromPath("feed.csv"); ok {
		t.Fatal("csv should not map")
	}
	if FormatConsole.File() || !FormatTXT.File() {
		t.Fatal("File() mismatch")
	}
}

func TestNormalizeRecords(t *testing.T) {
	t.Parallel()

	in := []domain.Record{domain.NewRecord(" type ", "NEWS", "text", "hello. world", "city", "KYIV")}
	got := NormalizeRecords(normalize.New(), in)
	want := domain.NewRecord("Type", "News", "Text", "Hello. World", "City", "Kyiv")
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("NormalizeRecords = %+v, want %+v", got[0], want)
	}
	if in[0].Value(" type ") != "NEWS" {
		t.Fatal("input records must not be modified")
	}
}
