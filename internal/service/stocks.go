package service

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/richtv/market-content-api/internal/marketclock"
	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
	"github.com/richtv/market-content-api/pkg/logger"
)

const (
	stockQuotePath       = "/stable/quote"
	stockPriceChangePath = "/stable/stock-price-change"
	stockDailyPath       = "/stable/historical-price-eod/full"
	stockHourlyPath      = "/stable/historical-chart/1hour"
	mostActivesPath      = "/stable/most-actives"
	biggestGainersPath   = "/stable/biggest-gainers"
	biggestLosersPath    = "/stable/biggest-losers"

	moversSampleSize = 10
)

type StockService struct {
	client   *upstream.Client
	cache    *cache.ResponseCache
	quoteTTL time.Duration
}

func NewStockService(client *upstream.Client, responseCache *cache.ResponseCache, quoteTTL time.Duration) *StockService {
	return &StockService{
		client:   client,
		cache:    responseCache,
		quoteTTL: quoteTTL,
	}
}

func (s *StockService) RealTimeQuote(ctx context.Context, symbol string) ([]timeseries.Record, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	key := cache.Key("stock-quote", symbol)
	var cached []timeseries.Record
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var records []timeseries.Record
	query := url.Values{"symbol": {symbol}}
	if err := s.client.GetJSON(ctx, stockQuotePath, query, &records); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, records, s.quoteTTL)
	return records, nil
}

// PriceChanges returns the reshaped multi-horizon change set, or nil when
// the provider has no record for the symbol.
func (s *StockService) PriceChanges(ctx context.Context, symbol string) (*timeseries.PriceChanges, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	var records []timeseries.Record
	query := url.Values{"symbol": {symbol}}
	if err := s.client.GetJSON(ctx, stockPriceChangePath, query, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	changes := timeseries.ReshapeChanges(records[0])
	return &changes, nil
}

// HorizonChange projects one horizon from the full change set fetched once.
func (s *StockService) HorizonChange(ctx context.Context, symbol string, horizon timeseries.Horizon) (timeseries.Record, error) {
	changes, err := s.PriceChanges(ctx, symbol)
	if err != nil || changes == nil {
		return nil, err
	}
	return changes.View(horizon), nil
}

// LastHourData is the most recent hourly record of the current exchange-local
// day with the open-to-close move attached, or nil outside trading data.
type LastHourData struct {
	Symbol string            `json:"symbol"`
	Record timeseries.Record `json:"record"`
}

func (s *StockService) LastHour(ctx context.Context, symbol string) (*LastHourData, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}

	today := marketclock.FormatDate(time.Now())
	query := url.Values{
		"symbol": {symbol},
		"from":   {today},
		"to":     {today},
	}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, stockHourlyPath, query, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	// provider rows come newest first
	last := records[0]
	last["changePercent"] = last.ChangePercent()

	logger.Debug("last hour record resolved",
		zap.String("symbol", symbol),
		zap.Any("date", last["date"]))

	return &LastHourData{Symbol: symbol, Record: last}, nil
}

func (s *StockService) MostActive(ctx context.Context) ([]timeseries.Record, error) {
	return sampledList(ctx, s.client, mostActivesPath, moversSampleSize)
}

func (s *StockService) BiggestGainers(ctx context.Context) ([]timeseries.Record, error) {
	return sampledList(ctx, s.client, biggestGainersPath, moversSampleSize)
}

func (s *StockService) BiggestLosers(ctx context.Context) ([]timeseries.Record, error) {
	return sampledList(ctx, s.client, biggestLosersPath, moversSampleSize)
}

func (s *StockService) HistoricalDaily(ctx context.Context, symbol string, days int, from, to string) ([]timeseries.Record, error) {
	return historicalDaily(ctx, s.client, stockDailyPath, symbol, days, from, to)
}

func (s *StockService) HistoricalByHours(ctx context.Context, symbol string, hours float64) ([]timeseries.Record, error) {
	return historicalByHours(ctx, s.client, stockHourlyPath, symbol, hours)
}
