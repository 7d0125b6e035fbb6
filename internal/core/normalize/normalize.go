// Package normalize provides the field normalizer applied to every record key
// and value before a publication is built
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Drop control characters other than tab and line breaks
// 3 Unicode NFC composition
// 4 Sentence capitalization: each sentence (split after . ! ? #) gets an
// upper-cased first letter and a lower-cased rest
// 5 The first letter after a ":\n" break is upper-cased and the indentation
// in front of it is dropped
// Dates in YYYY/MM/DD form and digit-only values skip steps 4 and 5
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reDate       = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	reSentence   = regexp.MustCompile(`[.!?#]\s*`)
	reColonBreak = regexp.MustCompile(`:\n\s*([a-zA-Z])`)
)

// Normalizer is concurrency safe when used with the pools below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.Predicate(isDroppedControl)),
			norm.NFC,
		)
	},
}

// cases.Caser is stateful and not safe for concurrent use
var lowerPool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Text returns the normalized form of a field value
func (n *Normalizer) Text(s string) string {
	if s == "" {
		return ""
	}
	s = clean(s)
	if reDate.MatchString(s) || isDigits(s) {
		return s
	}
	s = capitalizeSentences(s)
	return reColonBreak.ReplaceAllStringFunc(s, func(m string) string {
		last, _ := utf8.DecodeLastRuneInString(m)
		return ":\n" + string(unicode.ToUpper(last))
	})
}

// Key returns the normalized form of a field name; surrounding space is trimmed
func (n *Normalizer) Key(s string) string {
	return n.Text(strings.TrimSpace(s))
}

func clean(s string) string {
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// isDroppedControl matches C0/C1 controls and DEL, keeping \t \n \r
func isDroppedControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// capitalizeSentences capitalizes the text between delimiters; the
// delimiters themselves pass through unchanged
func capitalizeSentences(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := 0
	for _, loc := range reSentence.FindAllStringIndex(s, -1) {
		b.WriteString(capitalize(s[prev:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		prev = loc[1]
	}
	b.WriteString(capitalize(s[prev:]))
	return b.String()
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	lc := lowerPool.Get().(cases.Caser)
	rest := lc.String(s[size:])
	lowerPool.Put(lc)
	return string(unicode.ToTitle(first)) + rest
}
