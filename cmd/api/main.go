package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/richtv/market-content-api/internal/api"
	"github.com/richtv/market-content-api/internal/config"
	"github.com/richtv/market-content-api/internal/rss"
	"github.com/richtv/market-content-api/internal/scrape"
	"github.com/richtv/market-content-api/internal/service"
	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/internal/upstream"
	pkglogger "github.com/richtv/market-content-api/pkg/logger"
)

// @title Market Content API
// @version 1.0
// @description Market data aggregation API: quotes, windowed history,
// @description price changes, headlines and analysis feeds.

// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
func main() {
	cfg := config.Load()

	if err := pkglogger.Init(cfg.LogLevel, cfg.Environment == "development"); err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer pkglogger.Close()

	responseCache := connectRedis(cfg)
	if responseCache != nil {
		defer responseCache.Close()
	}

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, cfg.UpstreamTimeout)
	feeds := rss.NewFetcher(cfg.RSSTimeout, cfg.RSSMaxArticles)
	scrapeCache := scrape.NewMemoryCache(cfg.ScrapeTTL, nil)

	handler := api.NewHandler(
		service.NewStockService(client, responseCache, cfg.QuoteCacheTTL),
		service.NewCryptoService(client, responseCache, cfg.QuoteCacheTTL),
		service.NewCommodityService(client, responseCache, cfg.QuoteCacheTTL),
		service.NewIndexService(client, responseCache, cfg.QuoteCacheTTL),
		service.NewSectorService(client),
		service.NewMacroService(client),
		service.NewNewsService(client, responseCache, cfg.NewsCacheTTL),
		service.NewAnalystService(client),
		feeds,
		scrape.NewSectorScraper(cfg.UpstreamTimeout, scrapeCache),
		scrape.NewMacroScraper(cfg.UpstreamTimeout, scrapeCache),
		responseCache,
	)

	app := fiber.New(fiber.Config{
		Prefork:               false,
		ServerHeader:          "Market-Content-API",
		DisableStartupMessage: false,
		AppName:               "Market Content API v1.0.0",
		ReadTimeout:           cfg.APIReadTimeout,
		WriteTimeout:          cfg.APIWriteTimeout,
		IdleTimeout:           120 * time.Second,
		CompressedFileSuffix:  ".gz",
		ProxyHeader:           "X-Forwarded-For",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	api.SetupRoutes(app, handler, api.RouteOptions{
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		MetricsEnabled:  cfg.MetricsEnabled,
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("Starting server on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

func connectRedis(cfg *config.Config) *cache.ResponseCache {
	responseCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable: %v (continuing without cache)", err)
		return nil
	}

	log.Println("Connected to Redis")
	return responseCache
}
