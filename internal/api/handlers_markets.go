package api

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) RealTimeCryptoQuote(c *fiber.Ctx) error {
	records, err := h.crypto.RealTimeQuote(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch real-time crypto quote")
	}
	if len(records) == 0 {
		return notFound(c, "no quote found for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

func (h *Handler) CryptoHistoricalByDays(c *fiber.Ctx) error {
	return historicalByDays(c, h.crypto.HistoricalDaily)
}

func (h *Handler) CryptoHistoricalByHours(c *fiber.Ctx) error {
	return historicalByHours(c, h.crypto.HistoricalByHours)
}

func (h *Handler) RealTimeIndexQuote(c *fiber.Ctx) error {
	records, err := h.indices.RealTimeQuote(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch real-time index quote")
	}
	if len(records) == 0 {
		return notFound(c, "no quote found for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

func (h *Handler) IndexHistoricalByDays(c *fiber.Ctx) error {
	return historicalByDays(c, h.indices.HistoricalDaily)
}

func (h *Handler) IndexHistoricalByHours(c *fiber.Ctx) error {
	return historicalByHours(c, h.indices.HistoricalByHours)
}

func (h *Handler) RealTimeAllCommodityQuotes(c *fiber.Ctx) error {
	records, err := h.commodities.RealTimeAllQuotes(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch commodity quotes")
	}
	if len(records) == 0 {
		return notFound(c, "no commodity quotes available")
	}
	return c.JSON(records)
}

func (h *Handler) RealTimeCommodityQuote(c *fiber.Ctx) error {
	records, err := h.commodities.RealTimeQuote(c.Context(), c.Query("symbol"))
	if err != nil {
		return fail(c, err, "failed to fetch real-time commodity quote")
	}
	if len(records) == 0 {
		return notFound(c, "no quote found for symbol "+c.Query("symbol"))
	}
	return c.JSON(records)
}

// CommodityHistoricalByDays returns the provider's envelope object rather
// than a bare row list, matching the v3 endpoint it proxies.
func (h *Handler) CommodityHistoricalByDays(c *fiber.Ctx) error {
	days, ok := queryDays(c)
	if !ok {
		return badRequest(c, "days must be a positive number")
	}

	from, to := c.Query("from"), c.Query("to")
	if days == 0 && (from == "" || to == "") {
		return badRequest(c, "either days or from/to date range is required")
	}

	payload, err := h.commodities.HistoricalDaily(c.Context(), c.Query("symbol"), days, from, to)
	if err != nil {
		return fail(c, err, "failed to fetch commodity historical daily prices")
	}
	if len(payload) == 0 {
		return notFound(c, "no historical data found for the given parameters")
	}
	return c.JSON(payload)
}

func (h *Handler) CommodityHistoricalByHours(c *fiber.Ctx) error {
	return historicalByHours(c, h.commodities.HistoricalByHours)
}
