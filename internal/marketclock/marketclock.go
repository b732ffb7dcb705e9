// Package marketclock converts caller-supplied day and hour lookback windows
// into the calendar date ranges and instant spans the upstream provider and
// the time-window filter work with. All hour arithmetic happens in US Eastern
// exchange time (America/New_York).
package marketclock

import (
	"errors"
	"math"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

var (
	ErrInvalidDays  = errors.New("days must be a positive number")
	ErrInvalidHours = errors.New("hours must be a positive number")
)

// nowFunc is swapped out by tests.
var nowFunc = time.Now

// Eastern is the exchange timezone. Provider timestamps are wall-clock times
// in this zone with no offset marker.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tzdata available; UTC-5 keeps date boundaries close enough
		// for the buffered request window.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Window is an inclusive calendar-day range, both bounds YYYY-MM-DD.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DateRange returns the window covering the last days calendar days,
// inclusive of today (UTC date of execution). days=1 yields from==to.
func DateRange(days int) (Window, error) {
	if days <= 0 {
		return Window{}, ErrInvalidDays
	}

	to := nowFunc().UTC()
	from := to.AddDate(0, 0, -(days - 1))

	return Window{
		From: from.Format(DateLayout),
		To:   to.Format(DateLayout),
	}, nil
}

// Span is an inclusive instant range in exchange-local time.
type Span struct {
	Cutoff time.Time
	Now    time.Time
}

// HourWindow returns the span ending at the current exchange-local instant
// and starting exactly hours hours earlier.
func HourWindow(hours float64) (Span, error) {
	if hours <= 0 {
		return Span{}, ErrInvalidHours
	}

	now := nowFunc().In(Eastern)
	cutoff := now.Add(-time.Duration(hours * float64(time.Hour)))

	return Span{Cutoff: cutoff, Now: now}, nil
}

// RequestRange is the date range sent to the provider for this span. The
// lower bound is pushed back by ceil(hours/24)+2 buffer days so that enough
// raw rows come back to survive the exact filter; the buffer never appears
// in filtered output.
func (s Span) RequestRange() (from, to string) {
	hours := s.Now.Sub(s.Cutoff).Hours()
	buffer := int(math.Ceil(hours/24)) + 2

	from = s.Cutoff.AddDate(0, 0, -buffer).Format(DateLayout)
	to = s.Now.Format(DateLayout)
	return from, to
}

// Contains reports whether t falls inside the span, both bounds inclusive.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Cutoff) && !t.After(s.Now)
}

// FormatDate renders an instant as an exchange-local YYYY-MM-DD date.
func FormatDate(t time.Time) string {
	return t.In(Eastern).Format(DateLayout)
}

// FormatDateTime renders an instant as an exchange-local
// "YYYY-MM-DD HH:mm:ss" timestamp, the format provider rows use.
func FormatDateTime(t time.Time) string {
	return t.In(Eastern).Format(DateTimeLayout)
}

// ParseMarketTime parses a provider timestamp, either a space-separated
// date-time or a bare date, as exchange-local wall-clock time.
func ParseMarketTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, value, Eastern); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout, value, Eastern)
}
