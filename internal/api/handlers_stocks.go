package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/richtv/market-content-api/internal/timeseries"
)

func (h *Handler) RealTimeStockQuote(c *fiber.Ctx) error {
	records, err := h.stocks.RealTimeQuote(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch real-time stock quote")
	}
	if len(records) == 0 {
		return notFound(c, "no quote found for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

func (h *Handler) StockPriceChanges(c *fiber.Ctx) error {
	changes, err := h.stocks.PriceChanges(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch stock price changes")
	}
	if changes == nil {
		return notFound(c, "no price change data for symbol "+c.Query("symbol"))
	}
	return c.JSON(changes)
}

// StockHorizonChange serves the single-horizon projections that share one
// provider fetch with the full price-change map.
func (h *Handler) StockHorizonChange(horizon timeseries.Horizon) fiber.Handler {
	return func(c *fiber.Ctx) error {
		record, err := h.stocks.HorizonChange(c.Context(), c.Query("symbol"), horizon)
		if err != nil {
			return fail(c, err, "failed to fetch stock price change")
		}
		if record == nil {
			return notFound(c, "no price change data for symbol "+c.Query("symbol"))
		}
		return c.JSON(record)
	}
}

func (h *Handler) LastHourStockData(c *fiber.Ctx) error {
	data, err := h.stocks.LastHour(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch last hour stock data")
	}
	if data == nil {
		return notFound(c, "no intraday data for symbol "+c.Query("symbol"))
	}
	return c.JSON(data)
}

func (h *Handler) MostActiveStocks(c *fiber.Ctx) error {
	records, err := h.stocks.MostActive(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch most active stocks")
	}
	return c.JSON(records)
}

func (h *Handler) BiggestGainerStocks(c *fiber.Ctx) error {
	records, err := h.stocks.BiggestGainers(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch biggest gainer stocks")
	}
	return c.JSON(records)
}

func (h *Handler) BiggestLoserStocks(c *fiber.Ctx) error {
	records, err := h.stocks.BiggestLosers(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch biggest loser stocks")
	}
	return c.JSON(records)
}

func (h *Handler) StockHistoricalByDays(c *fiber.Ctx) error {
	return historicalByDays(c, h.stocks.HistoricalDaily)
}

func (h *Handler) StockHistoricalByHours(c *fiber.Ctx) error {
	return historicalByHours(c, h.stocks.HistoricalByHours)
}

type dailyFetcher func(ctx context.Context, symbol string, days int, from, to string) ([]timeseries.Record, error)

type hourlyFetcher func(ctx context.Context, symbol string, hours float64) ([]timeseries.Record, error)

// historicalByDays is the shared byDays handler body: every asset class
// takes the same symbol + days-or-range query surface.
func historicalByDays(c *fiber.Ctx, fetch dailyFetcher) error {
	days, ok := queryDays(c)
	if !ok {
		return badRequest(c, "days must be a positive number")
	}

	from, to := c.Query("from"), c.Query("to")
	if days == 0 && (from == "" || to == "") {
		return badRequest(c, "either days or from/to date range is required")
	}

	records, err := fetch(c.Context(), c.Query("symbol"), days, from, to)
	if err != nil {
		return fail(c, err, "failed to fetch historical daily prices")
	}
	if len(records) == 0 {
		return notFound(c, "no historical data found for the given parameters")
	}
	return c.JSON(records)
}

func historicalByHours(c *fiber.Ctx, fetch hourlyFetcher) error {
	raw := c.Query("hours")
	if raw == "" {
		return badRequest(c, "hours parameter is required")
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return badRequest(c, "hours must be a positive number")
	}

	records, err := fetch(c.Context(), c.Query("symbol"), hours)
	if err != nil {
		return fail(c, err, "failed to fetch historical data by hours")
	}
	if len(records) == 0 {
		return notFound(c, "no historical data found for the given parameters")
	}
	return c.JSON(records)
}
