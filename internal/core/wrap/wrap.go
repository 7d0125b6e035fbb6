// Package wrap implements the greedy word wrap used to lay out publication bodies
package wrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width is the display width of s; equal to the byte length for ASCII
func Width(s string) int { return runewidth.StringWidth(s) }

// Lines packs the whitespace-delimited words of s into lines.
// A word joins the current line when width(line)+width(word)+1 <= max,
// otherwise the line is flushed and the word starts a new one.
// A word wider than max gets a line of its own. max < 1 disables wrapping
func Lines(s string, max int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if max < 1 {
		return []string{strings.Join(words, " ")}
	}

	var (
		out  []string
		cur  strings.Builder
		curW int
	)
	for _, w := range words {
		ww := Width(w)
		switch {
		case curW == 0:
			cur.WriteString(w)
			curW = ww
		case curW+ww+1 <= max:
			cur.WriteByte(' ')
			cur.WriteString(w)
			curW += ww + 1
		default:
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(w)
			curW = ww
		}
	}
	return append(out, cur.String())
}

// String is Lines joined with newlines
func String(s string, max int) string { return strings.Join(Lines(s, max), "\n") }
