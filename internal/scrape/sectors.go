package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/richtv/market-content-api/pkg/metrics"
)

const (
	sectorsSourceURL = "https://www.tradingview.com/markets/stocks-usa/sectorandindustry-sector/"

	sectorsAnchor    = `"data":{"screener":{"data":{"data":`
	sectorsEndMarker = `],"totalCount"`
)

// Sector is one row of the TradingView US sectors overview.
type Sector struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Screener         string  `json:"screener"`
	MarketCapUSD     float64 `json:"marketCapUsd"`
	Type             any     `json:"type"`
	Currency         any     `json:"currency"`
	DividendYieldPct float64 `json:"dividendYieldPct"`
	ChangePct        float64 `json:"changePct"`
	Volume           float64 `json:"volume"`
	IndustriesCount  float64 `json:"industriesCount"`
	StocksCount      float64 `json:"stocksCount"`
}

// SectorsPayload is the response shape for the full sectors board, sorted
// by market cap descending to match the site.
type SectorsPayload struct {
	SourceURL string    `json:"sourceUrl"`
	AsOf      time.Time `json:"asOf"`
	Count     int       `json:"count"`
	Sectors   []Sector  `json:"sectors"`
}

type SectorScraper struct {
	sourceURL  string
	httpClient *http.Client
	cache      *MemoryCache
}

func NewSectorScraper(timeout time.Duration, cache *MemoryCache) *SectorScraper {
	return &SectorScraper{
		sourceURL:  sectorsSourceURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}
}

// All returns the sectors board, served from the shared TTL cache when a
// recent scrape is still fresh.
func (s *SectorScraper) All(ctx context.Context) (*SectorsPayload, error) {
	if cached, ok := s.cache.Get("sectors"); ok {
		metrics.RecordCacheHit("scrape")
		return cached.(*SectorsPayload), nil
	}
	metrics.RecordCacheMiss("scrape")

	html, err := fetchHTML(ctx, s.httpClient, s.sourceURL)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("sectors", "error").Inc()
		return nil, err
	}
	metrics.ScrapeRequests.WithLabelValues("sectors", "ok").Inc()

	sectors, err := parseSectors(html)
	if err != nil {
		return nil, err
	}

	payload := &SectorsPayload{
		SourceURL: s.sourceURL,
		AsOf:      time.Now().UTC(),
		Count:     len(sectors),
		Sectors:   sectors,
	}

	s.cache.Set("sectors", payload)
	return payload, nil
}

// ByID looks one sector up by its TradingView identifier, e.g.
// SECTOR_US:TECHNOLOGY.SERVICES. Returns nil when unknown.
func (s *SectorScraper) ByID(ctx context.Context, sectorID string) (*Sector, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all.Sectors {
		if all.Sectors[i].ID == sectorID {
			return &all.Sectors[i], nil
		}
	}
	return nil, nil
}

// parseSectors extracts the screener array embedded in the page's state
// JSON. The payload sits between a stable anchor and the totalCount field,
// which survives markup changes far better than any DOM selector.
func parseSectors(html string) ([]Sector, error) {
	anchorIndex := strings.Index(html, sectorsAnchor)
	if anchorIndex == -1 {
		return nil, fmt.Errorf("sectors anchor not found in page")
	}

	start := strings.Index(html[anchorIndex:], "[")
	if start == -1 {
		return nil, fmt.Errorf("sectors array start not found")
	}
	start += anchorIndex

	end := strings.Index(html[start:], sectorsEndMarker)
	if end == -1 {
		return nil, fmt.Errorf("sectors array end not found")
	}
	end += start

	var rows []struct {
		S string `json:"s"`
		D []any  `json:"d"`
	}
	if err := json.Unmarshal([]byte(html[start:end+1]), &rows); err != nil {
		return nil, fmt.Errorf("parsing sectors payload: %w", err)
	}

	sectors := make([]Sector, 0, len(rows))
	for _, row := range rows {
		if len(row.D) < 11 {
			continue
		}
		sectors = append(sectors, Sector{
			ID:               row.S,
			Name:             fmt.Sprintf("%v", row.D[0]),
			Screener:         fmt.Sprintf("%v", row.D[1]),
			MarketCapUSD:     toNumber(row.D[2]),
			Type:             row.D[3],
			Currency:         row.D[5],
			DividendYieldPct: toNumber(row.D[6]),
			ChangePct:        toNumber(row.D[7]),
			Volume:           toNumber(row.D[8]),
			IndustriesCount:  toNumber(row.D[9]),
			StocksCount:      toNumber(row.D[10]),
		})
	}

	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].MarketCapUSD > sectors[j].MarketCapUSD
	})

	return sectors, nil
}

func toNumber(v any) float64 {
	f, _ := v.(float64)
	return f
}

// fetchHTML pulls a page with browser-like headers; TradingView rejects
// bare client requests.
func fetchHTML(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.tradingview.com/")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scrape target returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading scrape response: %w", err)
	}
	return string(body), nil
}
