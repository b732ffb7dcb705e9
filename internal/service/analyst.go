package service

import (
	"context"
	"net/url"
	"time"

	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

const (
	priceTargetNewsPath       = "/stable/price-target-news"
	priceTargetLatestNewsPath = "/stable/price-target-latest-news"
	gradesHistoricalPath      = "/stable/grades-historical"
	gradesLatestNewsPath      = "/stable/grades-latest-news"

	ratingsNewsLookback = 30 * 24 * time.Hour
)

type AnalystService struct {
	client *upstream.Client
}

func NewAnalystService(client *upstream.Client) *AnalystService {
	return &AnalystService{client: client}
}

func (s *AnalystService) PriceTargetNews(ctx context.Context, symbol string) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	var records []timeseries.Record
	query := url.Values{"symbol": {symbol}}
	if err := s.client.GetJSON(ctx, priceTargetNewsPath, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *AnalystService) RandomPriceTargetNews(ctx context.Context, symbol string, count int) ([]timeseries.Record, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	records, err := s.PriceTargetNews(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return timeseries.Sample(records, count), nil
}

func (s *AnalystService) LatestPriceTargetNews(ctx context.Context) ([]timeseries.Record, error) {
	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, priceTargetLatestNewsPath, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *AnalystService) RandomLatestPriceTargetNews(ctx context.Context, count int) ([]timeseries.Record, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}

	records, err := s.LatestPriceTargetNews(ctx)
	if err != nil {
		return nil, err
	}
	return timeseries.Sample(records, count), nil
}

// Ratings returns the current-month analyst grade summary for a symbol,
// or nil when the provider has none.
func (s *AnalystService) Ratings(ctx context.Context, symbol string) (timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	var records []timeseries.Record
	query := url.Values{"symbol": {symbol}}
	if err := s.client.GetJSON(ctx, gradesHistoricalPath, query, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// RatingsNewsLast30Days returns grade-change news published within the last
// 30 days. Rows may stamp the date under "date" or "publishedDate"; rows
// without either are dropped.
func (s *AnalystService) RatingsNewsLast30Days(ctx context.Context) ([]timeseries.Record, error) {
	query := url.Values{"limit": {"30"}}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, gradesLatestNewsPath, query, &records); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-ratingsNewsLookback)

	recent := make([]timeseries.Record, 0, len(records))
	for _, rec := range records {
		at, ok := publishedAt(rec)
		if ok && !at.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	return recent, nil
}

func (s *AnalystService) RandomRatingsNews(ctx context.Context) (timeseries.Record, error) {
	recent, err := s.RatingsNewsLast30Days(ctx)
	if err != nil {
		return nil, err
	}

	rec, ok := timeseries.PickOne(recent)
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func publishedAt(rec timeseries.Record) (time.Time, bool) {
	raw, exists := rec["date"]
	if !exists {
		raw, exists = rec["publishedDate"]
	}
	if !exists {
		return time.Time{}, false
	}

	s, isStr := raw.(string)
	if !isStr {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
