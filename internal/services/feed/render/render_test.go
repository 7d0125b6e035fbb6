package render

import (
	"strings"
	"testing"

	"newsfeed/internal/core/wrap"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

func TestRender_News(t *testing.T) {
	t.Parallel()

	got := Render(domain.News{Text: "Hello world", City: "Kyiv", Date: "2024/05/10", Time: "14:07"}, 50)
	want := "News " + strings.Repeat("-", 46) + "\n" +
		"Hello world\n" +
		"Kyiv, 2024/05/10  14:07"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRender_PrivateAdAndJoke(t *testing.T) {
	t.Parallel()

	ad := New(20).Render(domain.PrivateAd{Text: "Selling a very old bicycle cheap", ExpirationDate: "2024/05/15", DaysLeft: -3})
	wantAd := "Private_ad ----------\n" +
		"Selling a very old\n" +
		"bicycle cheap\n" +
		"Actual until: 2024/05/15, -3 days left"
	if ad != wantAd {
		t.Fatalf("ad got\n%s\nwant\n%s", ad, wantAd)
	}

	joke := Render(domain.Joke{Text: "Why?", Hashtag: "Dad", FunIndex: 3}, 50)
	info := strings.Split(joke, "\n")[2]
	if info != "HashTag: #Dad Fun Index: *** (3/10)" {
		t.Fatalf("joke info = %q", info)
	}
}

func TestTitleBar_ShortWidth(t *testing.T) {
	t.Parallel()

	if got := TitleBar(domain.KindPrivateAd, 5); got != "Private_ad " {
		t.Fatalf("TitleBar = %q", got)
	}
}

func TestNew_DefaultWidth(t *testing.T) {
	t.Parallel()

	if New(0).MaxLength != DefaultMaxLength {
		t.Fatal("zero width should fall back to default")
	}
}

func TestRender_WrapInvariant(t *testing.T) {
	t.Parallel()

	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod " +
		"tempor incididunt ut labore et dolore magna aliqua Pneumonoultramicroscopicsilicovolcanoconiosis ok"
	pubs := []domain.Publication{
		domain.Joke{Text: text, Hashtag: "x", FunIndex: 1},
		domain.Joke{Text: text, Hashtag: "a hashtag long enough to be wrapped on its own", FunIndex: 10},
		domain.News{Text: text, City: "Llanfairpwllgwyngyll Gogerychwyrndrobwll", Date: "2024/05/10", Time: "14:07"},
		domain.PrivateAd{Text: text, ExpirationDate: "2030/01/01", DaysLeft: 2059},
	}
	for _, p := range pubs {
		for _, width := range []int{10, 20, 37, 50} {
			lines := strings.Split(Render(p, width), "\n")
			body := wrap.Lines(p.Body(), width)

			// the title bar is tag, space, dashes: one column wider than width
			// unless the tag alone is already wider
			if got, want := wrap.Width(lines[0]), max(width, wrap.Width(string(p.Kind())))+1; got != want {
				t.Fatalf("%s width %d: title bar %q is %d wide, want %d", p.Kind(), width, lines[0], got, want)
			}

			for _, l := range lines[1 : 1+len(body)] {
				if wrap.Width(l) > width && strings.Contains(l, " ") {
					t.Fatalf("%s width %d: body line %q too long", p.Kind(), width, l)
				}
			}

			// the info line keeps its fixed prefix and suffix; only the
			// city or hashtag inside it is wrapped
			info := strings.Join(lines[1+len(body):], "\n")
			if info != InfoLine(p, width) {
				t.Fatalf("%s width %d: info part %q", p.Kind(), width, info)
			}
			disc, err := ParseInfoLine(p.Kind(), info)
			if err != nil {
				t.Fatalf("ParseInfoLine: %v", err)
			}
			if wrap.Width(disc) > width {
				if want := len(wrap.Lines(disc, width)); len(lines)-1-len(body) != want {
					t.Fatalf("%s width %d: info spans %d lines, want %d", p.Kind(), width, len(lines)-1-len(body), want)
				}
			}
		}
	}
}

func TestInfoLine_MayExceedWidth(t *testing.T) {
	t.Parallel()

	got := InfoLine(domain.News{Text: "t", City: "Oslo", Date: "2024/05/10", Time: "14:07"}, 10)
	if got != "Oslo, 2024/05/10  14:07" {
		t.Fatalf("InfoLine = %q", got)
	}
	if wrap.Width(got) <= 10 {
		t.Fatalf("expected the fixed date suffix to run past the width")
	}
}

func TestParseInfoLine_RoundTrip(t *testing.T) {
	t.Parallel()

	pubs := []domain.Publication{
		domain.News{Text: "t", City: "Great_City", Date: "2024/05/10", Time: "14:07"},
		domain.News{Text: "t", City: "San Francisco Bay Area In Northern California", Date: "2024/05/10", Time: "00:00"},
		domain.PrivateAd{Text: "t", ExpirationDate: "2030/01/01", DaysLeft: 12},
		domain.PrivateAd{Text: "t", ExpirationDate: "2020/01/01", DaysLeft: -5},
		domain.Joke{Text: "t", Hashtag: "FunnyJoke", FunIndex: 10},
		domain.Joke{Text: "t", Hashtag: "two words", FunIndex: 1},
		domain.News{Text: "t", City: " Paris", Date: "2024/05/10", Time: "14:07"},
		domain.News{Text: "t", City: "New  York", Date: "2024/05/10", Time: "14:07"},
		domain.Joke{Text: "t", Hashtag: "dad  jokes", FunIndex: 2},
	}
	for _, p := range pubs {
		for _, width := range []int{12, 50} {
			info := InfoLine(p, width)
			got, err := ParseInfoLine(p.Kind(), info)
			if err != nil {
				t.Fatalf("ParseInfoLine(%q): %v", info, err)
			}
			if want := p.DedupKey().Discriminator; got != want {
				t.Fatalf("round trip = %q, want %q", got, want)
			}
		}
	}
}

func TestParseInfoLine_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind domain.Kind
		line string
		code perr.ErrorCode
	}{
		{domain.KindNews, "Kyiv 2024/05/10 14:07", perr.ErrorCodeInvalidFormat},
		{domain.KindPrivateAd, "Actual until: soon", perr.ErrorCodeInvalidFormat},
		{domain.KindJoke, "HashTag: #x Fun Index: ** (3/10)", perr.ErrorCodeInvalidFormat},
		{"Poem", "anything", perr.ErrorCodeUnrecognizedType},
	}
	for _, c := range cases {
		if _, err := ParseInfoLine(c.kind, c.line); !perr.IsCode(err, c.code) {
			t.Fatalf("ParseInfoLine(%s, %q) err = %v", c.kind, c.line, err)
		}
	}
}
