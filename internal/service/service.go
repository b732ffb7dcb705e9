// Package service composes the time-window primitives against the provider
// endpoints of each asset domain. Every function is request-scoped: it
// validates its inputs, fetches, shapes, and returns plain values for the
// HTTP layer to translate.
package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/richtv/market-content-api/internal/marketclock"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
	"github.com/richtv/market-content-api/pkg/metrics"
)

var (
	ErrSymbolRequired = errors.New("symbol is required")
	ErrSectorRequired = errors.New("sector is required")
	ErrInvalidCount   = errors.New("count must be a positive number")
)

// IsBadInput reports whether err belongs to the invalid-input taxonomy that
// the HTTP layer maps to a client error.
func IsBadInput(err error) bool {
	return errors.Is(err, ErrSymbolRequired) ||
		errors.Is(err, ErrSectorRequired) ||
		errors.Is(err, ErrInvalidCount) ||
		errors.Is(err, marketclock.ErrInvalidDays) ||
		errors.Is(err, marketclock.ErrInvalidHours)
}

// historicalDaily fetches day-granularity history. A positive days wins and
// is turned into a trailing window; otherwise literal from/to pass through;
// with neither, the provider's own default range comes back unfiltered.
// Day-interval aggregation happens provider-side, so no client filter runs.
func historicalDaily(ctx context.Context, client *upstream.Client, path, symbol string, days int, from, to string) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	query := url.Values{"symbol": {symbol}}

	if days != 0 {
		window, err := marketclock.DateRange(days)
		if err != nil {
			return nil, err
		}
		query.Set("from", window.From)
		query.Set("to", window.To)
	} else if from != "" && to != "" {
		query.Set("from", from)
		query.Set("to", to)
	}

	var records []timeseries.Record
	if err := client.GetJSON(ctx, path, query, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []timeseries.Record{}
	}
	return records, nil
}

// historicalByHours fetches the provider's day-bounded hourly endpoint over
// a buffered request range, then applies the exact window filter. This is
// the one path that needs FilterSort: the endpoint returns unfiltered,
// newest-first rows.
func historicalByHours(ctx context.Context, client *upstream.Client, path, symbol string, hours float64) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	span, err := marketclock.HourWindow(hours)
	if err != nil {
		return nil, err
	}

	from, to := span.RequestRange()
	query := url.Values{
		"symbol": {symbol},
		"from":   {from},
		"to":     {to},
	}

	var records []timeseries.Record
	if err := client.GetJSON(ctx, path, query, &records); err != nil {
		return nil, err
	}

	filtered := timeseries.FilterSort(records, span)
	metrics.RecordsFiltered.Observe(float64(len(filtered)))
	return filtered, nil
}

// historicalDailyObject is historicalDaily for v3-style endpoints that key
// the symbol in the path and wrap the rows in an envelope object.
func historicalDailyObject(ctx context.Context, client *upstream.Client, path string, days int, from, to string) (timeseries.Record, error) {
	query := url.Values{}

	if days != 0 {
		window, err := marketclock.DateRange(days)
		if err != nil {
			return nil, err
		}
		query.Set("from", window.From)
		query.Set("to", window.To)
	} else if from != "" && to != "" {
		query.Set("from", from)
		query.Set("to", to)
	}

	var payload timeseries.Record
	if err := client.GetJSON(ctx, path, query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// sampledList fetches a provider list endpoint and returns a random subset.
func sampledList(ctx context.Context, client *upstream.Client, path string, count int) ([]timeseries.Record, error) {
	var records []timeseries.Record
	if err := client.GetJSON(ctx, path, nil, &records); err != nil {
		return nil, err
	}
	return timeseries.Sample(records, count), nil
}
