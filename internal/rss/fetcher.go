package rss

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/richtv/market-content-api/pkg/logger"
	"github.com/richtv/market-content-api/pkg/metrics"
	"go.uber.org/zap"
)

// randomPoolSize is how many of the newest items a random pick draws from.
const randomPoolSize = 20

// Article is one feed item flattened to the response shape.
type Article struct {
	Title         string   `json:"title"`
	PublishedDate string   `json:"publishedDate"`
	Author        string   `json:"author"`
	Link          string   `json:"link"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	GUID          string   `json:"guid"`
	Type          string   `json:"type,omitempty"`
	Markdown      string   `json:"markdown,omitempty"`
}

// FeedInfo carries the channel-level metadata of the source feed.
type FeedInfo struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	LastBuildDate string `json:"lastBuildDate,omitempty"`
	TotalItems    int    `json:"totalItems"`
}

// Result pairs the selected articles with their feed's metadata.
type Result struct {
	Articles []Article `json:"articles"`
	FeedInfo FeedInfo  `json:"feedInfo"`
}

// Digest is the combined multi-category fetch: one article list per
// category key plus the overall count.
type Digest struct {
	Sections      map[string][]Article `json:"sections"`
	TotalArticles int                  `json:"totalArticles"`
}

// Fetcher pulls and flattens analysis feeds and scrapes the content of
// randomly picked articles.
type Fetcher struct {
	parser      *gofeed.Parser
	client      *http.Client
	converter   *md.Converter
	maxArticles int
}

// NewFetcher builds a Fetcher with the given per-request timeout and the
// default article cap used when a caller passes max <= 0.
func NewFetcher(timeout time.Duration, maxArticles int) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxArticles <= 0 {
		maxArticles = 5
	}

	client := &http.Client{Timeout: timeout}
	parser := gofeed.NewParser()
	parser.Client = client

	return &Fetcher{
		parser:      parser,
		client:      client,
		converter:   md.NewConverter("", true, nil),
		maxArticles: maxArticles,
	}
}

// Latest fetches the newest max articles from the category's feed. max <= 0
// falls back to the fetcher default.
func (f *Fetcher) Latest(ctx context.Context, cat Category, max int) (*Result, error) {
	if max <= 0 {
		max = f.maxArticles
	}
	return f.fetch(ctx, cat, max)
}

// Random fetches the category's feed, picks one article uniformly from the
// newest randomPoolSize items and scrapes its page content into Markdown. A
// pick whose page cannot be scraped fails the whole call.
func (f *Fetcher) Random(ctx context.Context, cat Category) (*Article, *FeedInfo, error) {
	res, err := f.fetch(ctx, cat, randomPoolSize)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Articles) == 0 {
		return nil, nil, fmt.Errorf("no articles in feed %s", cat.URL)
	}

	article := res.Articles[rand.Intn(len(res.Articles))]
	markdown, err := f.scrapeMarkdown(ctx, article.Link)
	if err != nil {
		return nil, nil, err
	}
	article.Markdown = markdown
	return &article, &res.FeedInfo, nil
}

// RandomAcross picks one of the categories uniformly, then a random article
// from it.
func (f *Fetcher) RandomAcross(ctx context.Context, cats []Category) (*Article, *FeedInfo, error) {
	if len(cats) == 0 {
		return nil, nil, fmt.Errorf("no feed categories configured")
	}
	return f.Random(ctx, cats[rand.Intn(len(cats))])
}

// Combined fetches every category concurrently and merges the results into
// a Digest keyed by category. Any single feed failure fails the whole call.
func (f *Fetcher) Combined(ctx context.Context, cats []Category, perFeed int) (*Digest, error) {
	if perFeed <= 0 {
		perFeed = f.maxArticles
	}

	sections := make([][]Article, len(cats))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		i, cat := i, cat
		g.Go(func() error {
			res, err := f.fetch(gctx, cat, perFeed)
			if err != nil {
				return fmt.Errorf("fetch %s feed: %w", cat.Key, err)
			}
			sections[i] = res.Articles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	digest := &Digest{Sections: make(map[string][]Article, len(cats))}
	for i, cat := range cats {
		digest.Sections[cat.Key] = sections[i]
		digest.TotalArticles += len(sections[i])
	}
	return digest, nil
}

func (f *Fetcher) fetch(ctx context.Context, cat Category, max int) (*Result, error) {
	feed, err := f.parser.ParseURLWithContext(cat.URL, ctx)
	if err != nil {
		metrics.FeedFetches.WithLabelValues(cat.Key, "error").Inc()
		logger.Error("rss fetch failed",
			zap.String("category", cat.Key),
			zap.String("url", cat.URL),
			zap.Error(err))
		return nil, fmt.Errorf("parse feed %s: %w", cat.URL, err)
	}
	metrics.FeedFetches.WithLabelValues(cat.Key, "ok").Inc()

	items := feed.Items
	if len(items) > max {
		items = items[:max]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, flattenItem(item, cat.Label))
	}

	return &Result{
		Articles: articles,
		FeedInfo: FeedInfo{
			Title:         feed.Title,
			Description:   feed.Description,
			Link:          feed.Link,
			LastBuildDate: feed.Updated,
			TotalItems:    len(feed.Items),
		},
	}, nil
}

func flattenItem(item *gofeed.Item, label string) Article {
	a := Article{
		Title:         item.Title,
		PublishedDate: item.Published,
		Author:        itemAuthor(item),
		Link:          item.Link,
		Description:   item.Description,
		Categories:    item.Categories,
		GUID:          item.GUID,
		Type:          label,
	}
	if a.Title == "" {
		a.Title = "Untitled"
	}
	if a.Description == "" {
		a.Description = item.Content
	}
	if a.GUID == "" {
		a.GUID = item.Link
	}
	if a.Categories == nil {
		a.Categories = []string{}
	}
	return a
}

// itemAuthor prefers the dc:creator extension over the plain author element,
// matching how most Investing.com items carry bylines.
func itemAuthor(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return "Unknown"
}
