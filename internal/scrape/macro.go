package scrape

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/richtv/market-content-api/pkg/metrics"
)

const macroWorldURL = "https://tradingeconomics.com/matrix"

// MacroRow is one country row of the scraped world indicators table.
type MacroRow struct {
	Country     string `json:"country"`
	Last        string `json:"last"`
	Previous    string `json:"previous"`
	Observation string `json:"observation"`
	Unit        string `json:"unit"`
	Frequency   string `json:"frequency"`
	NextRelease string `json:"nextRelease"`
	Forecast    string `json:"forecast"`
}

type MacroScraper struct {
	sourceURL  string
	httpClient *http.Client
	cache      *MemoryCache
}

func NewMacroScraper(timeout time.Duration, cache *MemoryCache) *MacroScraper {
	return &MacroScraper{
		sourceURL:  macroWorldURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}
}

// WorldIndicators scrapes the by-country macro table. The provider has no
// equivalent endpoint, so this path bypasses it entirely.
func (s *MacroScraper) WorldIndicators(ctx context.Context) ([]MacroRow, error) {
	if cached, ok := s.cache.Get("macro-world"); ok {
		metrics.RecordCacheHit("scrape")
		return cached.([]MacroRow), nil
	}
	metrics.RecordCacheMiss("scrape")

	html, err := fetchHTML(ctx, s.httpClient, s.sourceURL)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("macro-world", "error").Inc()
		return nil, err
	}
	metrics.ScrapeRequests.WithLabelValues("macro-world", "ok").Inc()

	rows, err := ParseMacroWorld(html)
	if err != nil {
		return nil, err
	}

	s.cache.Set("macro-world", rows)
	return rows, nil
}

// ParseMacroWorld extracts country rows from the first populated table in
// the document. Header cells map columns by name, so column reordering
// upstream doesn't break extraction; a table without a header falls back to
// positional cells.
func ParseMacroWorld(html string) ([]MacroRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var rows []MacroRow
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		extracted := rowsFromTable(table)
		if len(extracted) > 0 {
			rows = extracted
			return false
		}
		return true
	})

	return cleanupRows(rows), nil
}

func rowsFromTable(table *goquery.Selection) []MacroRow {
	headerIndex := map[string]int{}
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		key := normalizeHeader(th.Text())
		headerIndex[key] = i
	})

	var rows []MacroRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")

		var row MacroRow
		if len(headerIndex) > 0 {
			row = MacroRow{
				Country:     cellAt(cells, headerIndex, "country"),
				Last:        cellAt(cells, headerIndex, "last"),
				Previous:    cellAt(cells, headerIndex, "previous"),
				Observation: cellAt(cells, headerIndex, "observation"),
				Unit:        cellAt(cells, headerIndex, "unit"),
				Frequency:   cellAt(cells, headerIndex, "frequency"),
				NextRelease: cellAt(cells, headerIndex, "next release"),
				Forecast:    cellAt(cells, headerIndex, "forecast"),
			}
		} else {
			row = MacroRow{
				Country:     cellText(cells, 0),
				Last:        cellText(cells, 1),
				Previous:    cellText(cells, 2),
				Observation: cellText(cells, 3),
				Unit:        cellText(cells, 4),
				Frequency:   cellText(cells, 5),
				NextRelease: cellText(cells, 6),
				Forecast:    cellText(cells, 7),
			}
		}

		if row != (MacroRow{}) {
			rows = append(rows, row)
		}
	})
	return rows
}

func normalizeHeader(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func cellAt(cells *goquery.Selection, headerIndex map[string]int, header string) string {
	idx, ok := headerIndex[header]
	if !ok {
		return ""
	}
	return cellText(cells, idx)
}

func cellText(cells *goquery.Selection, idx int) string {
	if idx < 0 || idx >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(idx).Text())
}

// cleanupRows drops decoration rows that repeat the header text inside the
// body.
func cleanupRows(rows []MacroRow) []MacroRow {
	out := make([]MacroRow, 0, len(rows))
	for _, row := range rows {
		if row.Country == "" || strings.Contains(row.Country, "Country") {
			continue
		}
		out = append(out, row)
	}
	return out
}
