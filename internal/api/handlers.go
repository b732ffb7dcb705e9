package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/richtv/market-content-api/internal/rss"
	"github.com/richtv/market-content-api/internal/scrape"
	"github.com/richtv/market-content-api/internal/service"
	"github.com/richtv/market-content-api/internal/storage/cache"
	"github.com/richtv/market-content-api/pkg/logger"
)

const apiVersion = "1.0.0"

type Handler struct {
	stocks      *service.StockService
	crypto      *service.CryptoService
	commodities *service.CommodityService
	indices     *service.IndexService
	sectors     *service.SectorService
	macro       *service.MacroService
	news        *service.NewsService
	analyst     *service.AnalystService
	feeds       *rss.Fetcher
	sectorBoard *scrape.SectorScraper
	macroBoard  *scrape.MacroScraper
	cache       *cache.ResponseCache
}

func NewHandler(
	stocks *service.StockService,
	crypto *service.CryptoService,
	commodities *service.CommodityService,
	indices *service.IndexService,
	sectors *service.SectorService,
	macro *service.MacroService,
	news *service.NewsService,
	analyst *service.AnalystService,
	feeds *rss.Fetcher,
	sectorBoard *scrape.SectorScraper,
	macroBoard *scrape.MacroScraper,
	responseCache *cache.ResponseCache,
) *Handler {
	return &Handler{
		stocks:      stocks,
		crypto:      crypto,
		commodities: commodities,
		indices:     indices,
		sectors:     sectors,
		macro:       macro,
		news:        news,
		analyst:     analyst,
		feeds:       feeds,
		sectorBoard: sectorBoard,
		macroBoard:  macroBoard,
		cache:       responseCache,
	}
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Version:   apiVersion,
		Timestamp: time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	services := make(map[string]ServiceHealth)

	cacheStart := time.Now()
	if err := h.cache.HealthCheck(ctx); err != nil {
		// the cache is optional, degraded but still serving
		services["cache"] = ServiceHealth{
			Status: "unhealthy",
			Error:  err.Error(),
		}
	} else {
		services["cache"] = ServiceHealth{
			Status:  "healthy",
			Latency: time.Since(cacheStart).String(),
		}
	}

	return c.JSON(HealthResponse{
		Status:    "ready",
		Version:   apiVersion,
		Timestamp: time.Now(),
		Services:  services,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestID").(string); ok {
		return id
	}
	return ""
}

func errorJSON(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return errorJSON(c, fiber.StatusBadRequest, message)
}

func notFound(c *fiber.Ctx, message string) error {
	return errorJSON(c, fiber.StatusNotFound, message)
}

// fail translates a service error: invalid input becomes 400 with the
// error's own message, anything else is logged and hidden behind a 500.
func fail(c *fiber.Ctx, err error, message string) error {
	if service.IsBadInput(err) {
		return badRequest(c, err.Error())
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.String("request_id", requestID(c)))

	return errorJSON(c, fiber.StatusInternalServerError, message)
}

// queryDays reads an optional positive-integer day count. Returns 0 when
// the parameter is absent and ok=false when it is present but malformed.
func queryDays(c *fiber.Ctx) (days int, ok bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func queryCount(c *fiber.Ctx, fallback int) (int, bool) {
	raw := c.Query("count")
	if raw == "" {
		raw = c.Query("limit")
	}
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
