package domain

import (
	"strings"
	"time"

	perr "newsfeed/internal/platform/errors"
)

// Layouts shared by the factory, renderer and stores
const (
	DateLayout = "2006/01/02"
	TimeLayout = "15:04"
)

// ParseDate parses a YYYY/MM/DD date in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidDatef("invalid date %q, want YYYY/MM/DD", s), KeyExpirationDate)
	}
	return t, nil
}
