package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/richtv/market-content-api/internal/rss"
)

const defaultRandomCount = 5

func (h *Handler) AnalystPriceTargetNews(c *fiber.Ctx) error {
	records, err := h.analyst.PriceTargetNews(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch analyst price target news")
	}
	if len(records) == 0 {
		return notFound(c, "no price target news for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

func (h *Handler) RandomAnalystPriceTargetNews(c *fiber.Ctx) error {
	count, ok := queryCount(c, defaultRandomCount)
	if !ok {
		return badRequest(c, "count must be a positive number")
	}

	records, err := h.analyst.RandomPriceTargetNews(c.Context(), c.Query("symbol"), count)
	if err != nil {
		return fail(c, err, "failed to fetch analyst price target news")
	}
	if len(records) == 0 {
		return notFound(c, "no price target news for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

func (h *Handler) LatestAnalystPriceTargetNews(c *fiber.Ctx) error {
	records, err := h.analyst.LatestPriceTargetNews(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch latest analyst price target news")
	}
	if len(records) == 0 {
		return notFound(c, "no recent price target news")
	}
	return c.JSON(records)
}

func (h *Handler) RandomLatestAnalystPriceTargetNews(c *fiber.Ctx) error {
	count, ok := queryCount(c, defaultRandomCount)
	if !ok {
		return badRequest(c, "count must be a positive number")
	}

	records, err := h.analyst.RandomLatestPriceTargetNews(c.Context(), count)
	if err != nil {
		return fail(c, err, "failed to fetch latest analyst price target news")
	}
	if len(records) == 0 {
		return notFound(c, "no recent price target news")
	}
	return c.JSON(records)
}

func (h *Handler) AnalystRatings(c *fiber.Ctx) error {
	record, err := h.analyst.Ratings(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch analyst ratings")
	}
	if record == nil {
		return notFound(c, "no ratings for symbol "+c.Query("symbol"))
	}
	return c.JSON(record)
}

func (h *Handler) LatestAnalystRatingsNews(c *fiber.Ctx) error {
	records, err := h.analyst.RatingsNewsLast30Days(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch analyst ratings news")
	}
	if len(records) == 0 {
		return notFound(c, "no ratings news in the last 30 days")
	}
	return c.JSON(records)
}

func (h *Handler) RandomAnalystRatingsNews(c *fiber.Ctx) error {
	record, err := h.analyst.RandomRatingsNews(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch analyst ratings news")
	}
	if record == nil {
		return notFound(c, "no ratings news in the last 30 days")
	}
	return c.JSON(record)
}

// FeedCategories lists the analysis feeds available under a route group.
func FeedCategories(cats []rss.Category) fiber.Handler {
	infos := make([]FeedCategoryInfo, 0, len(cats))
	for _, cat := range cats {
		infos = append(infos, FeedCategoryInfo{Key: cat.Key, Label: cat.Label})
	}
	resp := CategoriesResponse{Categories: infos}

	return func(c *fiber.Ctx) error {
		return c.JSON(resp)
	}
}

// RandomFeedArticle serves one random article from a fixed category.
func (h *Handler) RandomFeedArticle(cat rss.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		article, info, err := h.feeds.Random(c.Context(), cat)
		if err != nil {
			return fail(c, err, "failed to fetch "+cat.Label)
		}
		return c.JSON(ArticleResponse{Article: article, FeedInfo: info})
	}
}

// RandomFeedArticleAcross serves one random article from a random member of
// the category set.
func (h *Handler) RandomFeedArticleAcross(cats []rss.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		article, info, err := h.feeds.RandomAcross(c.Context(), cats)
		if err != nil {
			return fail(c, err, "failed to fetch analysis article")
		}
		return c.JSON(ArticleResponse{Article: article, FeedInfo: info})
	}
}

// LatestFeedArticles serves the newest articles of a fixed category,
// honoring an optional count query.
func (h *Handler) LatestFeedArticles(cat rss.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, ok := queryCount(c, 0)
		if !ok {
			return badRequest(c, "count must be a positive number")
		}

		res, err := h.feeds.Latest(c.Context(), cat, count)
		if err != nil {
			return fail(c, err, "failed to fetch "+cat.Label)
		}
		return c.JSON(ArticlesResponse{Articles: res.Articles, FeedInfo: res.FeedInfo})
	}
}

// CombinedFeedArticles serves every category of the set in one response.
func (h *Handler) CombinedFeedArticles(cats []rss.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, ok := queryCount(c, 0)
		if !ok {
			return badRequest(c, "count must be a positive number")
		}

		digest, err := h.feeds.Combined(c.Context(), cats, count)
		if err != nil {
			return fail(c, err, "failed to fetch combined analysis articles")
		}
		return c.JSON(digest)
	}
}
