// Package render lays out publications as fixed-width feed blocks
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"newsfeed/internal/core/wrap"
	"newsfeed/internal/services/feed/domain"

	perr "newsfeed/internal/platform/errors"
)

// DefaultMaxLength is the wrap width of every block
const DefaultMaxLength = 50

// Renderer renders with a fixed wrap width
type Renderer struct {
	MaxLength int
}

// New returns a Renderer; widths below one fall back to the default
func New(maxLength int) Renderer {
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}
	return Renderer{MaxLength: maxLength}
}

// Render implements domain.Renderer
func (r Renderer) Render(p domain.Publication) string { return Render(p, r.MaxLength) }

// Render returns the title bar, the wrapped body and the info line joined by newlines
func Render(p domain.Publication, maxLength int) string {
	return strings.Join([]string{
		TitleBar(p.Kind(), maxLength),
		wrap.String(p.Body(), maxLength),
		InfoLine(p, maxLength),
	}, "\n")
}

// TitleBar is the tag followed by a dash rule filling up to maxLength
func TitleBar(k domain.Kind, maxLength int) string {
	tag := string(k)
	return tag + " " + strings.Repeat("-", max(0, maxLength-wrap.Width(tag)))
}

// InfoLine renders the variant specific trailer
func InfoLine(p domain.Publication, maxLength int) string {
	switch v := p.(type) {
	case domain.News:
		return fmt.Sprintf("%s, %s  %s", field(v.City, maxLength), v.Date, v.Time)
	case domain.PrivateAd:
		return fmt.Sprintf("Actual until: %s, %d days left", v.ExpirationDate, v.DaysLeft)
	case domain.Joke:
		return fmt.Sprintf("HashTag: #%s Fun Index: %s (%d/10)",
			field(v.Hashtag, maxLength), strings.Repeat("*", max(0, v.FunIndex)), v.FunIndex)
	}
	return ""
}

// field wraps an info line value only when it is wider than maxLength
func field(v string, maxLength int) string {
	if wrap.Width(v) <= maxLength {
		return v
	}
	return wrap.String(v, maxLength)
}

var (
	reNewsInfo = regexp.MustCompile(`(?s)^(.*), (\d{4}/\d{2}/\d{2})  (\d{2}:\d{2})$`)
	reAdInfo   = regexp.MustCompile(`^Actual until: (\d{4}/\d{2}/\d{2}), (-?\d+) days left$`)
	reJokeInfo = regexp.MustCompile(`(?s)^HashTag: #(.*) Fun Index: (\**) \((\d+)/10\)$`)
)

// ParseInfoLine recovers the dedup discriminator from a rendered info line
// Wrapped city and hashtag lines are joined back with single spaces
func ParseInfoLine(k domain.Kind, line string) (string, error) {
	var m []string
	switch k {
	case domain.KindNews:
		m = reNewsInfo.FindStringSubmatch(line)
	case domain.KindPrivateAd:
		m = reAdInfo.FindStringSubmatch(line)
	case domain.KindJoke:
		m = reJokeInfo.FindStringSubmatch(line)
		if m != nil {
			if n, err := strconv.Atoi(m[3]); err != nil || n != len(m[2]) {
				return "", perr.InvalidFormatf("render: fun index %s does not match %d stars", m[3], len(m[2]))
			}
		}
	default:
		return "", perr.UnrecognizedTypef("render: no info line for %q", k)
	}
	if m == nil {
		return "", perr.InvalidFormatf("render: malformed %s info line %q", k, line)
	}
	return strings.ReplaceAll(m[1], "\n", " "), nil
}
