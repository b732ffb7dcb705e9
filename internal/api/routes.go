package api

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richtv/market-content-api/internal/rss"
	"github.com/richtv/market-content-api/internal/timeseries"
)

// RouteOptions tunes the cross-cutting middleware of the /api/v1 group.
type RouteOptions struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
	MetricsEnabled  bool
}

func SetupRoutes(app *fiber.App, handler *Handler, opts RouteOptions) {
	app.Use(RequestID())

	// Operational endpoints stay outside the rate limit.
	app.Get("/health", handler.HealthCheck)
	app.Get("/ready", handler.ReadinessCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	if opts.RateLimitMax > 0 {
		v1.Use(RateLimiter(opts.RateLimitMax, opts.RateLimitWindow))
	}
	if opts.MetricsEnabled {
		v1.Use(PrometheusMiddleware())
	}

	stock := v1.Group("/stock")
	stock.Get("/real-time", handler.RealTimeStockQuote)
	stock.Get("/price-change", handler.StockPriceChanges)
	stock.Get("/price-change/one-day", handler.StockHorizonChange(timeseries.HorizonOneDay))
	stock.Get("/price-change/one-week", handler.StockHorizonChange(timeseries.HorizonOneWeek))
	stock.Get("/price-change/one-month", handler.StockHorizonChange(timeseries.HorizonOneMonth))
	stock.Get("/price-change/six-month", handler.StockHorizonChange(timeseries.HorizonSixMonth))
	stock.Get("/price-change/one-year", handler.StockHorizonChange(timeseries.HorizonOneYear))
	stock.Get("/last-hour", handler.LastHourStockData)
	stock.Get("/most-active", handler.MostActiveStocks)
	stock.Get("/biggest-gainers", handler.BiggestGainerStocks)
	stock.Get("/biggest-losers", handler.BiggestLoserStocks)
	stock.Get("/historicalData/byDays", handler.StockHistoricalByDays)
	stock.Get("/historicalData/byHours", handler.StockHistoricalByHours)

	crypto := v1.Group("/crypto")
	crypto.Get("/real-time", handler.RealTimeCryptoQuote)
	crypto.Get("/historicalData/byDays", handler.CryptoHistoricalByDays)
	crypto.Get("/historicalData/byHours", handler.CryptoHistoricalByHours)

	commodity := v1.Group("/commodity")
	commodity.Get("/real-time-all", handler.RealTimeAllCommodityQuotes)
	commodity.Get("/real-time", handler.RealTimeCommodityQuote)
	commodity.Get("/historicalData/byDays", handler.CommodityHistoricalByDays)
	commodity.Get("/historicalData/byHours", handler.CommodityHistoricalByHours)

	indices := v1.Group("/indices")
	indices.Get("/real-time", handler.RealTimeIndexQuote)
	indices.Get("/historicalData/byDays", handler.IndexHistoricalByDays)
	indices.Get("/historicalData/byHours", handler.IndexHistoricalByHours)

	sectors := v1.Group("/sectors")
	sectors.Get("/", handler.SectorsBoard)
	sectors.Get("/historicalData/byDays", handler.SectorHistoricalByDays)

	macro := v1.Group("/macroIndicators")
	macro.Get("/calendar/byDays", handler.EconomicCalendarByDays)
	macro.Get("/calendar/random/byDays", handler.RandomEconomicCalendarRecords)
	macro.Get("/world", handler.MacroWorldIndicators)

	news := v1.Group("/newsSummaries")
	news.Get("/major-financial-headlines", handler.TodayMajorFinancialHeadlines)
	news.Get("/five-random-major-financial-headlines", handler.RandomMajorFinancialHeadlines(5))
	news.Get("/one-random-major-financial-headlines", handler.RandomMajorFinancialHeadlines(1))

	stockAnalysis := v1.Group("/stockAnalysis")
	stockAnalysis.Get("/", handler.AnalystPriceTargetNews)
	stockAnalysis.Get("/random", handler.RandomAnalystPriceTargetNews)
	stockAnalysis.Get("/latest", handler.LatestAnalystPriceTargetNews)
	stockAnalysis.Get("/random-latest", handler.RandomLatestAnalystPriceTargetNews)
	stockAnalysis.Get("/ratings", handler.AnalystRatings)
	stockAnalysis.Get("/ratings-news", handler.LatestAnalystRatingsNews)
	stockAnalysis.Get("/ratings-news-random", handler.RandomAnalystRatingsNews)
	stockAnalysis.Get("/analysis/categories", FeedCategories(rss.StockFeeds))
	stockAnalysis.Get("/analysis/stocks", handler.RandomFeedArticle(rss.StocksFeed))
	stockAnalysis.Get("/analysis/futures", handler.RandomFeedArticle(rss.FuturesFeed))
	stockAnalysis.Get("/analysis/fundamental", handler.RandomFeedArticle(rss.StockFundamentalFeed))
	stockAnalysis.Get("/analysis/technical", handler.RandomFeedArticle(rss.StockTechnicalFeed))
	stockAnalysis.Get("/analysis/random", handler.RandomFeedArticleAcross(rss.StockFeeds))

	commoditiesAnalysis := v1.Group("/commoditiesAnalysis")
	commoditiesAnalysis.Get("/categories", FeedCategories(rss.CommodityFeeds))
	commoditiesAnalysis.Get("/technical", handler.LatestFeedArticles(rss.CommodityTechnicalFeed))
	commoditiesAnalysis.Get("/fundamental", handler.LatestFeedArticles(rss.CommodityFundamentalFeed))
	commoditiesAnalysis.Get("/metals", handler.LatestFeedArticles(rss.MetalsFeed))
	commoditiesAnalysis.Get("/energy", handler.LatestFeedArticles(rss.EnergyFeed))
	commoditiesAnalysis.Get("/all", handler.CombinedFeedArticles(rss.CommodityFeeds))

	v1.Get("/indicesAnalysis/analysis", handler.RandomFeedArticle(rss.IndicesFeed))
	v1.Get("/cryptoAnalysis/analysis", handler.RandomFeedArticle(rss.CryptoFeed))
}
