package rss

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/richtv/market-content-api/pkg/logger"
	"github.com/richtv/market-content-api/pkg/metrics"
	"go.uber.org/zap"
)

// containerSelectors locate the article body, tried in order. The first entry
// is Investing.com's article wrapper; the rest cover common CMS layouts.
var containerSelectors = []string{
	".article_WYSIWYG__O0uhw",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"article",
}

// usefulTags is the element whitelist kept from the article container.
const usefulTags = "h1, h2, h3, h4, h5, h6, p, li, ul, ol, blockquote"

// boilerplate matches filler lines (ads, share prompts) dropped from the body.
var boilerplate = regexp.MustCompile(`(?i)^\s*(advertisement|subscribe|click here|share|follow|like|comment)`)

// scrapeMarkdown downloads the article page, extracts its useful content and
// converts it to markdown.
func (f *Fetcher) scrapeMarkdown(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("building article request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("article", "error").Inc()
		return "", fmt.Errorf("fetch article %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ScrapeRequests.WithLabelValues("article", "error").Inc()
		return "", fmt.Errorf("fetch article %s: status %d", link, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("article", "error").Inc()
		return "", fmt.Errorf("parse article %s: %w", link, err)
	}

	content, err := extractUsefulContent(doc)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("article", "error").Inc()
		return "", fmt.Errorf("extract article %s: %w", link, err)
	}

	markdown, err := f.converter.ConvertString(content)
	if err != nil {
		metrics.ScrapeRequests.WithLabelValues("article", "error").Inc()
		return "", fmt.Errorf("convert article %s: %w", link, err)
	}

	metrics.ScrapeRequests.WithLabelValues("article", "ok").Inc()
	logger.Debug("article scraped", zap.String("link", link), zap.Int("bytes", len(markdown)))

	return strings.TrimSpace(markdown), nil
}

// extractUsefulContent keeps only the whitelisted elements of the article
// container. A page without an h1 is treated as not an article.
func extractUsefulContent(doc *goquery.Document) (string, error) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return "", fmt.Errorf("no headline on page")
	}

	var container *goquery.Selection
	for _, sel := range containerSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			container = s
			break
		}
	}
	if container == nil {
		container = h1.Parent()
	}

	var parts []string
	container.Find(usefulTags).Each(func(_ int, s *goquery.Selection) {
		// Items of a captured list are already part of their ul/ol markup.
		if goquery.NodeName(s) == "li" && s.ParentsFiltered("ul, ol").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if len(text) < 10 || boilerplate.MatchString(text) {
			return
		}
		if html, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, html)
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("no usable content on page")
	}

	return strings.Join(parts, "\n"), nil
}
