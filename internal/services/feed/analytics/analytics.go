// Package analytics recomputes word and letter snapshots from the feed.
// Every run rescans the whole feed, so cost grows with the feed size
package analytics

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"newsfeed/internal/platform/logger"

	perr "newsfeed/internal/platform/errors"
)

// Default output names
const (
	DefaultWordsPath   = "words_count.csv"
	DefaultLettersPath = "letters_count.csv"
)

var (
	wordsHeader   = []string{"Word", "Quantity"}
	lettersHeader = []string{"Letter/Digit", "Count_all", "Count_Upper", "Percentage"}
)

// WordCount is one row of the word snapshot
type WordCount struct {
	Word     string
	Quantity int
}

// LetterCount is one row of the letter snapshot
type LetterCount struct {
	Letter rune
	All    int
	Upper  int
}

// Percent is the uppercase share rounded to two decimals
func (l LetterCount) Percent() float64 {
	if l.All == 0 {
		return 0
	}
	return math.Round(float64(l.Upper)/float64(l.All)*100*100) / 100
}

// Processor writes both snapshots next to each other
type Processor struct {
	wordsPath   string
	lettersPath string
}

// New returns a Processor writing to the given CSV paths
func New(wordsPath, lettersPath string) (*Processor, error) {
	if wordsPath == "" || lettersPath == "" {
		return nil, perr.InvalidArgf("analytics: empty output path")
	}
	if filepath.Clean(wordsPath) == filepath.Clean(lettersPath) {
		return nil, perr.InvalidArgf("analytics: words and letters share %s", wordsPath)
	}
	return &Processor{wordsPath: wordsPath, lettersPath: lettersPath}, nil
}

// Analyze implements domain.Analyzer; it returns the row counts written
func (p *Processor) Analyze(ctx context.Context, content []byte) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	text := string(content)

	words := CountWords(text)
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		rows = append(rows, []string{w.Word, strconv.Itoa(w.Quantity)})
	}
	if err := writeCSV(p.wordsPath, wordsHeader, rows); err != nil {
		return 0, 0, err
	}

	letters := CountLetters(text)
	rows = make([][]string, 0, len(letters))
	for _, l := range letters {
		rows = append(rows, []string{
			string(l.Letter), strconv.Itoa(l.All), strconv.Itoa(l.Upper), FormatPercent(l.Percent()),
		})
	}
	if err := writeCSV(p.lettersPath, lettersHeader, rows); err != nil {
		return len(words), 0, err
	}

	logger.Named(ctx, "analytics").Debug().Int("words", len(words)).Int("letters", len(letters)).Msg("analytics: snapshots written")
	return len(words), len(letters), nil
}

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// CountWords tallies lower-cased whitespace tokens with their edge punctuation
// stripped; tokens without a letter are dropped. Rows keep first-seen order
func CountWords(text string) []WordCount {
	idx := map[string]int{}
	var out []WordCount
	for _, tok := range strings.Fields(text) {
		w := strings.TrimFunc(tok, func(r rune) bool { return !isAlnum(r) })
		if strings.IndexFunc(w, unicode.IsLetter) < 0 {
			continue
		}
		w = strings.ToLower(w)
		if i, ok := idx[w]; ok {
			out[i].Quantity++
			continue
		}
		idx[w] = len(out)
		out = append(out, WordCount{Word: w, Quantity: 1})
	}
	return out
}

// CountLetters tallies every letter case-insensitively plus its uppercase
// occurrences. Rows keep first-seen order
func CountLetters(text string) []LetterCount {
	idx := map[rune]int{}
	var out []LetterCount
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		lr := unicode.ToLower(r)
		i, ok := idx[lr]
		if !ok {
			i = len(out)
			idx[lr] = i
			out = append(out, LetterCount{Letter: lr})
		}
		out[i].All++
		if unicode.IsUpper(r) {
			out[i].Upper++
		}
	}
	return out
}

// FormatPercent prints the shortest decimal that keeps at least one fractional digit
// (33.33, 12.5, 100.0)
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// writeCSV replaces path atomically through a temp file in the same directory
func writeCSV(path string, header []string, rows [][]string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.IOf(err, "analytics: create dir for %s", path)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return perr.IOf(err, "analytics: temp file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	w.UseCRLF = true
	if err = w.Write(header); err != nil {
		return perr.IOf(err, "analytics: write %s", path)
	}
	if err = w.WriteAll(rows); err != nil {
		return perr.IOf(err, "analytics: write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return perr.IOf(err, "analytics: close %s", tmp.Name())
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return perr.IOf(err, "analytics: chmod %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return perr.IOf(err, "analytics: replace %s", path)
	}
	return nil
}
