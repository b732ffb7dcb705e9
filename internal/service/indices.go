package service

import (
	"context"
	"net/url"
	"time"

	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

const (
	indexQuotePath  = "/stable/quote"
	indexDailyPath  = "/stable/historical-price-eod/full"
	indexHourlyPath = "/stable/historical-chart/1hour"
)

type IndexService struct {
	client   *upstream.Client
	cache    *cache.ResponseCache
	quoteTTL time.Duration
}

func NewIndexService(client *upstream.Client, responseCache *cache.ResponseCache, quoteTTL time.Duration) *IndexService {
	return &IndexService{
		client:   client,
		cache:    responseCache,
		quoteTTL: quoteTTL,
	}
}

func (s *IndexService) RealTimeQuote(ctx context.Context, symbol string) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	key := cache.Key("index-quote", symbol)
	var cached []timeseries.Record
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var records []timeseries.Record
	query := url.Values{"symbol": {symbol}}
	if err := s.client.GetJSON(ctx, indexQuotePath, query, &records); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, records, s.quoteTTL)
	return records, nil
}

func (s *IndexService) HistoricalDaily(ctx context.Context, symbol string, days int, from, to string) ([]timeseries.Record, error) {
	return historicalDaily(ctx, s.client, indexDailyPath, symbol, days, from, to)
}

func (s *IndexService) HistoricalByHours(ctx context.Context, symbol string, hours float64) ([]timeseries.Record, error) {
	return historicalByHours(ctx, s.client, indexHourlyPath, symbol, hours)
}
