// Package time contains clock and calendar helpers
package time

import "time"

// Clock is the seam for wall-clock reads so tests can pin "now"
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain func to Clock
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// System returns the process wall clock
func System() Clock { return ClockFunc(time.Now) }

// Fixed returns a clock frozen at t
func Fixed(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

// DateOf truncates t to midnight in t's own location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of calendar days from from to to
// Both ends are reduced to their dates first, so the time of day never matters
func DaysBetween(from, to time.Time) int {
	a := DateOf(from)
	b := DateOf(to.In(from.Location()))
	// UTC midnights are exact multiples of a day apart; Unix seconds avoid the
	// ~292 year ceiling of time.Duration
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((bu.Unix() - au.Unix()) / secondsPerDay)
}
