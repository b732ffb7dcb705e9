package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func feedXML(base string, n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Test Analysis</title>
<description>Fixture feed</description>
<link>https://example.com</link>
<lastBuildDate>Fri, 15 Mar 2024 12:00:00 GMT</lastBuildDate>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `
<item>
<title>Article %d</title>
<link>%s/a/%d</link>
<pubDate>Fri, 15 Mar 2024 %02d:00:00 GMT</pubDate>
<dc:creator>Jane Writer</dc:creator>
<description>Body %d</description>
<category>Markets</category>
<guid>guid-%d</guid>
</item>`, i, base, i, i%24, i, i)
	}
	b.WriteString(`
</channel>
</rss>`)
	return b.String()
}

const articlePage = `<html><head><title>Gold Holds Its Ground</title></head><body>
<nav>Markets Crypto Commodities</nav>
<div class="article-content">
<h1>Gold Holds Its Ground</h1>
<p>Advertisement</p>
<p>Gold prices held steady on Friday as traders weighed the latest inflation data.</p>
<p>Short.</p>
<ul><li>Spot gold was flat at an ounce price of 2,160 dollars.</li></ul>
<blockquote>Analysts expect the rally to continue into the second quarter.</blockquote>
</div>
<footer>Subscribe to our newsletter for daily updates.</footer>
</body></html>`

// newFeedServer serves the fixture feed at /feed with item links pointing at
// the same server's article page.
func newFeedServer(t *testing.T, items int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML("http://"+r.Host, items))
	})
	mux.HandleFunc("/a/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func feedURL(srv *httptest.Server) string { return srv.URL + "/feed" }

func TestFetcherLatest_CapsAndFlattens(t *testing.T) {
	srv := newFeedServer(t, 8)
	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "stocks", Label: "Stocks Analysis", URL: feedURL(srv)}

	res, err := f.Latest(context.Background(), cat, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Articles) != 3 {
		t.Fatalf("len(Articles) = %d, want 3", len(res.Articles))
	}
	if res.FeedInfo.TotalItems != 8 {
		t.Errorf("TotalItems = %d, want 8", res.FeedInfo.TotalItems)
	}
	if res.FeedInfo.Title != "Test Analysis" {
		t.Errorf("feed title = %q", res.FeedInfo.Title)
	}

	a := res.Articles[0]
	if a.Title != "Article 0" {
		t.Errorf("title = %q", a.Title)
	}
	if a.Author != "Jane Writer" {
		t.Errorf("author = %q, want dc:creator value", a.Author)
	}
	if a.Type != "Stocks Analysis" {
		t.Errorf("type = %q", a.Type)
	}
	if a.GUID != "guid-0" {
		t.Errorf("guid = %q", a.GUID)
	}
}

func TestFetcherLatest_DefaultCap(t *testing.T) {
	srv := newFeedServer(t, 12)
	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "crypto", Label: "Crypto Analysis", URL: feedURL(srv)}

	res, err := f.Latest(context.Background(), cat, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Articles) != 5 {
		t.Fatalf("len(Articles) = %d, want default cap 5", len(res.Articles))
	}
}

func TestFetcherRandom_ReturnsMember(t *testing.T) {
	srv := newFeedServer(t, 6)
	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "indices", Label: "Indices Analysis", URL: feedURL(srv)}

	article, info, err := f.Random(context.Background(), cat)
	if err != nil {
		t.Fatal(err)
	}
	if info.TotalItems != 6 {
		t.Errorf("TotalItems = %d, want 6", info.TotalItems)
	}
	if !strings.HasPrefix(article.Title, "Article ") {
		t.Errorf("unexpected article %q", article.Title)
	}
}

func TestFetcherRandom_ScrapesArticleMarkdown(t *testing.T) {
	srv := newFeedServer(t, 6)
	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "stocks", Label: "Stocks Analysis", URL: feedURL(srv)}

	article, _, err := f.Random(context.Background(), cat)
	if err != nil {
		t.Fatal(err)
	}
	if article.Markdown == "" {
		t.Fatal("expected scraped markdown on the picked article")
	}
	if !strings.Contains(article.Markdown, "Gold Holds Its Ground") {
		t.Errorf("markdown lost the headline:\n%s", article.Markdown)
	}
	if !strings.Contains(article.Markdown, "inflation data") {
		t.Errorf("markdown lost a body paragraph:\n%s", article.Markdown)
	}
	if !strings.Contains(article.Markdown, "- Spot gold") {
		t.Errorf("markdown lost the list item:\n%s", article.Markdown)
	}
	if strings.Contains(article.Markdown, "Advertisement") {
		t.Errorf("markdown kept a boilerplate line:\n%s", article.Markdown)
	}
	if strings.Contains(article.Markdown, "Short.") {
		t.Errorf("markdown kept a below-threshold line:\n%s", article.Markdown)
	}
	if strings.Contains(article.Markdown, "Subscribe") {
		t.Errorf("markdown leaked content outside the article container:\n%s", article.Markdown)
	}
}

func TestFetcherRandom_ScrapeFailureFailsCall(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML("http://"+r.Host, 3))
	})
	mux.HandleFunc("/a/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "stocks", Label: "Stocks Analysis", URL: feedURL(srv)}

	if _, _, err := f.Random(context.Background(), cat); err == nil {
		t.Fatal("expected error when the picked article page cannot be fetched")
	}
}

func TestExtractUsefulContent_RequiresHeadline(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><p>Plenty of text but no headline anywhere on this page.</p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := extractUsefulContent(doc); err == nil {
		t.Fatal("expected error for a page without an h1")
	}
}

func TestExtractUsefulContent_FallsBackToHeadlineParent(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><div><h1>Oil Slips on Supply Data</h1><p>Crude futures slipped after inventories rose more than expected.</p></div></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := extractUsefulContent(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Oil Slips on Supply Data") || !strings.Contains(got, "inventories rose") {
		t.Errorf("extracted content = %q", got)
	}
}

func TestFetcherRandom_EmptyFeed(t *testing.T) {
	srv := newFeedServer(t, 0)
	f := NewFetcher(5*time.Second, 5)
	cat := Category{Key: "indices", Label: "Indices Analysis", URL: feedURL(srv)}

	if _, _, err := f.Random(context.Background(), cat); err == nil {
		t.Fatal("expected error on empty feed")
	}
}

func TestFetcherCombined_MergesSections(t *testing.T) {
	srvA := newFeedServer(t, 4)
	srvB := newFeedServer(t, 2)
	f := NewFetcher(5*time.Second, 5)
	cats := []Category{
		{Key: "metals", Label: "Metals Analysis", URL: feedURL(srvA)},
		{Key: "energy", Label: "Energy Analysis", URL: feedURL(srvB)},
	}

	digest, err := f.Combined(context.Background(), cats, 3)
	if err != nil {
		t.Fatal(err)
	}
	if digest.TotalArticles != 5 {
		t.Fatalf("TotalArticles = %d, want 5", digest.TotalArticles)
	}
	if len(digest.Sections["metals"]) != 3 {
		t.Errorf("metals section = %d articles, want 3", len(digest.Sections["metals"]))
	}
	if len(digest.Sections["energy"]) != 2 {
		t.Errorf("energy section = %d articles, want 2", len(digest.Sections["energy"]))
	}
	if got := digest.Sections["energy"][0].Type; got != "Energy Analysis" {
		t.Errorf("section article type = %q", got)
	}
}

func TestFetcherCombined_FailsAsUnit(t *testing.T) {
	good := newFeedServer(t, 4)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	f := NewFetcher(5*time.Second, 5)
	cats := []Category{
		{Key: "technical", Label: "Technical Analysis", URL: feedURL(good)},
		{Key: "fundamental", Label: "Fundamental Analysis", URL: bad.URL},
	}

	if _, err := f.Combined(context.Background(), cats, 3); err == nil {
		t.Fatal("expected combined fetch to fail when one feed fails")
	}
}
