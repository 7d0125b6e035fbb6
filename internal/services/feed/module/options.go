package module

import (
	"newsfeed/internal/platform/config"
	"newsfeed/internal/services/feed/analytics"
	"newsfeed/internal/services/feed/factory"
	"newsfeed/internal/services/feed/feedfile"
	"newsfeed/internal/services/feed/render"
)

// Options holds the feed pipeline settings
type Options struct {
	FeedPath    string
	FeedHeader  string
	WordsPath   string
	LettersPath string
	MaxLength   int
	Factory     factory.Config
}

// FromConfig reads NEWSFEED_ keys; relative paths resolve against base
func FromConfig(cfg config.Conf, base string) Options {
	nf := cfg.Prefix("NEWSFEED_")
	return Options{
		FeedPath:    nf.MayPath("FEED_PATH", base, "publications.txt"),
		FeedHeader:  nf.MayString("FEED_HEADER", feedfile.DefaultHeader),
		WordsPath:   nf.MayPath("WORDS_CSV", base, analytics.DefaultWordsPath),
		LettersPath: nf.MayPath("LETTERS_CSV", base, analytics.DefaultLettersPath),
		MaxLength:   nf.MayPositiveInt("MAX_LENGTH", render.DefaultMaxLength),
		Factory: factory.Config{
			DefaultCity:     nf.MayString("DEFAULT_CITY", factory.DefaultCity),
			DefaultHashtag:  nf.MayString("DEFAULT_HASHTAG", factory.DefaultHashtag),
			TextPlaceholder: nf.MayString("TEXT_PLACEHOLDER", factory.DefaultTextPlaceholder),
		},
	}
}
