// Package timeseries shapes raw provider rows into response-ready data:
// exact time-window filtering, chronological ordering, random sampling and
// percentage-change normalization.
package timeseries

import (
	"time"

	"github.com/richtv/market-content-api/internal/marketclock"
)

// Record is one opaque provider row. Only the timestamp field ("date" or
// "datetime") and, for change derivation, the "open"/"close" numbers carry
// meaning here; everything else passes through untouched.
type Record map[string]any

// Time parses the record's timestamp field as exchange-local time.
// ok is false when the field is missing or unparsable.
func (r Record) Time() (t time.Time, ok bool) {
	raw, exists := r["date"]
	if !exists {
		raw, exists = r["datetime"]
	}
	if !exists {
		return time.Time{}, false
	}

	s, isStr := raw.(string)
	if !isStr {
		return time.Time{}, false
	}

	t, err := marketclock.ParseMarketTime(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Float reads a numeric field. JSON decoding yields float64 for all numbers.
func (r Record) Float(key string) (float64, bool) {
	v, exists := r[key]
	if !exists {
		return 0, false
	}
	f, isNum := v.(float64)
	return f, isNum
}

// ChangePercent derives the intra-record percentage move from open to close,
// or nil when either side is missing or open is zero.
func (r Record) ChangePercent() *float64 {
	open, okOpen := r.Float("open")
	clos, okClose := r.Float("close")
	if !okOpen || !okClose || open == 0 {
		return nil
	}

	pct := (clos - open) / open * 100
	return &pct
}
