package service

import (
	"context"
	"net/url"
	"time"

	"github.com/richtv/market-content-api/internal/marketclock"
	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

const generalNewsPath = "/stable/news/general-latest"

// trustedSites is the allowlist of publishers whose headlines surface in
// the API: market data sites, major financial media, central banks and
// research portals.
var trustedSites = map[string]bool{
	"bloomberg.com":       true,
	"reuters.com":         true,
	"cnbc.com":            true,
	"apnews.com":          true,
	"wsj.com":             true,
	"ft.com":              true,
	"barrons.com":         true,
	"marketwatch.com":     true,
	"investing.com":       true,
	"finance.yahoo.com":   true,
	"tradingview.com":     true,
	"coinmarketcap.com":   true,
	"coindesk.com":        true,
	"imf.org":             true,
	"bis.org":             true,
	"ssrn.com":            true,
	"nber.org":            true,
	"federalreserve.gov":  true,
	"ecb.europa.eu":       true,
}

type NewsService struct {
	client *upstream.Client
	cache  *cache.ResponseCache
	ttl    time.Duration
}

func NewNewsService(client *upstream.Client, responseCache *cache.ResponseCache, ttl time.Duration) *NewsService {
	return &NewsService{
		client: client,
		cache:  responseCache,
		ttl:    ttl,
	}
}

// TodayHeadlines returns today's general financial headlines, filtered down
// to the trusted publisher allowlist.
func (s *NewsService) TodayHeadlines(ctx context.Context) ([]timeseries.Record, error) {
	today := marketclock.FormatDate(time.Now())

	key := cache.Key("headlines", today)
	var cached []timeseries.Record
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	query := url.Values{
		"from": {today},
		"to":   {today},
	}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, generalNewsPath, query, &records); err != nil {
		return nil, err
	}

	trusted := make([]timeseries.Record, 0, len(records))
	for _, rec := range records {
		site, _ := rec["site"].(string)
		if trustedSites[site] {
			trusted = append(trusted, rec)
		}
	}

	s.cache.Set(ctx, key, trusted, s.ttl)
	return trusted, nil
}

// RandomHeadlines returns count uniformly sampled trusted headlines.
func (s *NewsService) RandomHeadlines(ctx context.Context, count int) ([]timeseries.Record, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	headlines, err := s.TodayHeadlines(ctx)
	if err != nil {
		return nil, err
	}
	return timeseries.Sample(headlines, count), nil
}
