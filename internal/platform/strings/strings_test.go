package strings

import (
	"reflect"
	"testing"
)

func TestIfBlank(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, def, want string }{
		{"", "Great_City", "Great_City"},
		{"   ", "Great_City", "Great_City"},
		{"Paris", "Great_City", "Paris"},
	}
	for _, c := range cases {
		if got := IfBlank(c.in, c.def); got != c.want {
			t.Fatalf("IfBlank(%q,%q) = %q, want %q", c.in, c.def, got, c.want)
		}
	}
	if !IsBlank(" \t\n") || IsBlank(" x ") {
		t.Fatal("IsBlank mismatch")
	}
}

func TestSplitPad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		n    int
		want []string
	}{
		{"News # hello world # Paris", 3, []string{"News", "hello world", "Paris"}},
		{"Joke # knock knock", 3, []string{"Joke", "knock knock", ""}},
		{"", 3, []string{"", "", ""}},
		{"a#b#c#d", 3, []string{"a", "b", "c", "d"}},
	}
	for _, c := range cases {
		if got := SplitPad(c.in, "#", c.n); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("SplitPad(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestSquash(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		" Paris":          "Paris",
		"New  York":       "New York",
		"San\nFrancisco ": "San Francisco",
		"\t":              "",
		"Kyiv":            "Kyiv",
	}
	for in, want := range cases {
		if got := Squash(in); got != want {
			t.Fatalf("Squash(%q) = %q, want %q", in, got, want)
		}
	}
}
