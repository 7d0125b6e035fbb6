package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"newsfeed/internal/platform/logger"
	ptime "newsfeed/internal/platform/time"
	"newsfeed/internal/services/feed/domain"
)

// Console collects records interactively until the user picks 0 or input ends
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	clock ptime.Clock
}

// NewConsole wires prompts to out and answers from in
func NewConsole(in io.Reader, out io.Writer, clock ptime.Clock) *Console {
	if clock == nil {
		clock = ptime.System()
	}
	return &Console{in: bufio.NewReader(in), out: out, clock: clock}
}

// Name implements domain.Source
func (c *Console) Name() string { return string(FormatConsole) }

// Records implements domain.Source
func (c *Console) Records(ctx context.Context) ([]domain.Record, error) {
	c.say("\nPlease select the type of publication you want to add:\n1. News\n2. Private_ad\n3. Joke\n")

	var out []domain.Record
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		choice, ok := c.ask("\nEnter your choice (1, 2, or 3). Exit code - '0' : ")
		if !ok {
			return out, nil
		}
		var rec domain.Record
		switch strings.TrimSpace(choice) {
		case "0":
			c.say("\nExiting the program.\n")
			return out, nil
		case "1":
			text, _ := c.ask("Enter the news text: ")
			city, _ := c.ask("Enter the city: ")
			rec = domain.NewRecord(domain.KeyType, string(domain.KindNews), domain.KeyText, text, domain.KeyCity, city)
		case "2":
			text, _ := c.ask("Enter the ad text: ")
			date, ok := c.futureDate(ctx)
			if !ok {
				return out, ctx.Err()
			}
			rec = domain.NewRecord(domain.KeyType, string(domain.KindPrivateAd), domain.KeyText, text, domain.KeyExpirationDate, date)
		case "3":
			text, _ := c.ask("Enter the joke text: ")
			tag, _ := c.ask("Enter a hashtag: ")
			rec = domain.NewRecord(domain.KeyType, string(domain.KindJoke), domain.KeyText, text, domain.KeyHashtag, tag)
		default:
			c.say("Invalid choice. Please select a valid option.\n")
			continue
		}
		out = append(out, rec)
		c.say(fmt.Sprintf("%s has been added to the feed.\n", strings.ReplaceAll(rec.Value(domain.KeyType), "_", " ")))
	}
}

// futureDate re-prompts until the answer is a valid date after today
func (c *Console) futureDate(ctx context.Context) (string, bool) {
	for ctx.Err() == nil {
		s, ok := c.ask("Enter the expiration date (YYYY/MM/DD): ")
		if !ok {
			return "", false
		}
		now := c.clock.Now()
		d, err := domain.ParseDate(s, now.Location())
		if err != nil {
			logger.C(ctx).Debug().Err(err).Msg("console: rejected date")
			c.say("Invalid date format. Please use YYYY/MM/DD format and enter a valid date.\n")
			continue
		}
		if ptime.DaysBetween(now, d) < 1 {
			c.say("The expiration date must be in the future. Please try again.\n")
			continue
		}
		return strings.TrimSpace(s), true
	}
	return "", false
}

// ask prints a prompt and reads one line; false means input is exhausted
func (c *Console) ask(prompt string) (string, bool) {
	c.say(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (c *Console) say(s string) { _, _ = io.WriteString(c.out, s) }
