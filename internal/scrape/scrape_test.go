package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryCache_TTLExpiry(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute, func() time.Time { return clock })

	cache.Set("k", "v")

	if got, ok := cache.Get("k"); !ok || got != "v" {
		t.Fatalf("fresh entry: got %v, ok=%v", got, ok)
	}

	clock = clock.Add(59 * time.Second)
	if _, ok := cache.Get("k"); !ok {
		t.Error("entry expired early")
	}

	clock = clock.Add(2 * time.Second)
	if _, ok := cache.Get("k"); ok {
		t.Error("entry survived past its TTL")
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("unknown key reported present")
	}
}

const sectorsFixture = `<html><script>window.state={"data":{"screener":{"data":{"data":[` +
	`{"s":"SECTOR_US:TECHNOLOGY.SERVICES","d":["Technology services","technology-services",21000000000000.0,"sector",null,"USD",0.5,1.23,1000000.0,5.0,300.0]},` +
	`{"s":"SECTOR_US:FINANCE","d":["Finance","finance",33000000000000.0,"sector",null,"USD",1.9,-0.42,2000000.0,9.0,800.0]}` +
	`],"totalCount":2}}}};</script></html>`

func TestParseSectors(t *testing.T) {
	sectors, err := parseSectors(sectorsFixture)
	if err != nil {
		t.Fatal(err)
	}
	if len(sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(sectors))
	}

	// sorted by market cap descending
	if sectors[0].ID != "SECTOR_US:FINANCE" {
		t.Errorf("first sector = %s", sectors[0].ID)
	}
	if sectors[1].Name != "Technology services" {
		t.Errorf("second sector name = %s", sectors[1].Name)
	}
	if sectors[0].ChangePct != -0.42 {
		t.Errorf("changePct = %v", sectors[0].ChangePct)
	}
	if sectors[1].StocksCount != 300 {
		t.Errorf("stocksCount = %v", sectors[1].StocksCount)
	}
}

func TestParseSectors_MissingAnchor(t *testing.T) {
	if _, err := parseSectors("<html><body>nothing here</body></html>"); err == nil {
		t.Fatal("expected anchor error")
	}
}

func TestSectorScraper_ServesFromCache(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(sectorsFixture))
	}))
	defer srv.Close()

	clock := time.Now()
	scraper := NewSectorScraper(5*time.Second, NewMemoryCache(time.Minute, func() time.Time { return clock }))
	scraper.sourceURL = srv.URL
	scraper.httpClient = srv.Client()

	first, err := scraper.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Count != 2 {
		t.Fatalf("Count = %d, want 2", first.Count)
	}
	second, err := scraper.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fetches != 1 {
		t.Fatalf("fetches = %d after two calls, want 1", fetches)
	}
	if second.AsOf != first.AsOf {
		t.Fatalf("cached payload changed: %v vs %v", second.AsOf, first.AsOf)
	}

	clock = clock.Add(2 * time.Minute)
	if _, err := scraper.All(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fetches != 2 {
		t.Fatalf("fetches = %d after TTL expiry, want 2", fetches)
	}
}

const macroFixture = `<html><table>
<thead><tr><th>Country</th><th>Last</th><th>Previous</th><th>Observation</th><th>Unit</th><th>Frequency</th><th>Next Release</th><th>Forecast</th></tr></thead>
<tbody>
<tr><td>United States</td><td>3.2%</td><td>3.1</td><td>Jan 2024</td><td>Percent</td><td>Monthly</td><td>Feb 2024</td><td>3.0</td></tr>
<tr><td>Germany</td><td>2.9%</td><td>3.2</td><td>Jan 2024</td><td>Percent</td><td>Monthly</td><td></td><td></td></tr>
<tr><td>Country Last More</td><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</tbody></table></html>`

func TestParseMacroWorld(t *testing.T) {
	rows, err := ParseMacroWorld(macroFixture)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	us := rows[0]
	if us.Country != "United States" || us.Last != "3.2%" || us.Frequency != "Monthly" {
		t.Errorf("unexpected first row: %+v", us)
	}
	if us.NextRelease != "Feb 2024" || us.Forecast != "3.0" {
		t.Errorf("header-mapped columns wrong: %+v", us)
	}

	if rows[1].Country != "Germany" || rows[1].NextRelease != "" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestParseMacroWorld_NoTables(t *testing.T) {
	rows, err := ParseMacroWorld("<html><body><p>no data</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}
