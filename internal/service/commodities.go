package service

import (
	"context"
	"fmt"
	"time"

	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

// The commodity endpoints still live on the provider's v3 API surface,
// except hourly charts which moved to the stable one.
const (
	allCommoditiesPath  = "/api/v3/quotes/commodity"
	commodityQuotePath  = "/api/v3/quote/%s"
	commodityDailyPath  = "/api/v3/historical-price-full/%s"
	commodityHourlyPath = "/stable/historical-chart/1hour"
)

type CommodityService struct {
	client   *upstream.Client
	cache    *cache.ResponseCache
	quoteTTL time.Duration
}

func NewCommodityService(client *upstream.Client, responseCache *cache.ResponseCache, quoteTTL time.Duration) *CommodityService {
	return &CommodityService{
		client:   client,
		cache:    responseCache,
		quoteTTL: quoteTTL,
	}
}

// RealTimeAllQuotes returns the quote board for every commodity symbol.
func (s *CommodityService) RealTimeAllQuotes(ctx context.Context) ([]timeseries.Record, error) {
	key := cache.Key("commodity-quotes", "all")
	var cached []timeseries.Record
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, allCommoditiesPath, nil, &records); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, records, s.quoteTTL)
	return records, nil
}

func (s *CommodityService) RealTimeQuote(ctx context.Context, symbol string) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	var records []timeseries.Record
	path := fmt.Sprintf(commodityQuotePath, symbol)
	if err := s.client.GetJSON(ctx, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// HistoricalDaily returns the provider's wrapped daily history for one
// commodity. The v3 endpoint nests rows under "historical".
func (s *CommodityService) HistoricalDaily(ctx context.Context, symbol string, days int, from, to string) (timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	path := fmt.Sprintf(commodityDailyPath, symbol)
	return historicalDailyObject(ctx, s.client, path, days, from, to)
}

// Hourly data is symbol-limited upstream (BZUSD, SIUSD, ESUSD, GCUSD).
func (s *CommodityService) HistoricalByHours(ctx context.Context, symbol string, hours float64) ([]timeseries.Record, error) {
	return historicalByHours(ctx, s.client, commodityHourlyPath, symbol, hours)
}
