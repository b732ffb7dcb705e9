package api

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SectorHistoricalByDays(c *fiber.Ctx) error {
	days, ok := queryDays(c)
	if !ok || days == 0 {
		return badRequest(c, "days must be a positive number")
	}

	records, err := h.sectors.HistoricalPerformance(c.Context(), c.Query("sector"), days)
	if err != nil {
		return fail(c, err, "failed to fetch sector performance")
	}
	if len(records) == 0 {
		return notFound(c, "no sector performance data for the given parameters")
	}
	return c.JSON(records)
}

func (h *Handler) SectorsBoard(c *fiber.Ctx) error {
	payload, err := h.sectorBoard.All(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch sectors board")
	}
	return c.JSON(payload)
}

func (h *Handler) EconomicCalendarByDays(c *fiber.Ctx) error {
	days, ok := queryDays(c)
	if !ok || days == 0 {
		return badRequest(c, "days must be a positive number")
	}

	records, err := h.macro.EconomicCalendar(c.Context(), days)
	if err != nil {
		return fail(c, err, "failed to fetch economic calendar")
	}
	if len(records) == 0 {
		return notFound(c, "no calendar events in the requested window")
	}
	return c.JSON(records)
}

func (h *Handler) RandomEconomicCalendarRecords(c *fiber.Ctx) error {
	days, ok := queryDays(c)
	if !ok || days == 0 {
		return badRequest(c, "days must be a positive number")
	}
	count, ok := queryCount(c, 0)
	if !ok || count == 0 {
		return badRequest(c, "count must be a positive number")
	}

	records, err := h.macro.RandomCalendarRecords(c.Context(), days, count)
	if err != nil {
		return fail(c, err, "failed to fetch economic calendar")
	}
	if len(records) == 0 {
		return notFound(c, "no calendar events in the requested window")
	}
	return c.JSON(records)
}

func (h *Handler) MacroWorldIndicators(c *fiber.Ctx) error {
	payload, err := h.macroBoard.WorldIndicators(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch world macro indicators")
	}
	return c.JSON(payload)
}

func (h *Handler) TodayMajorFinancialHeadlines(c *fiber.Ctx) error {
	records, err := h.news.TodayHeadlines(c.Context())
	if err != nil {
		return fail(c, err, "failed to fetch financial headlines")
	}
	if len(records) == 0 {
		return notFound(c, "no trusted headlines published today")
	}
	return c.JSON(records)
}

func (h *Handler) RandomMajorFinancialHeadlines(count int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := h.news.RandomHeadlines(c.Context(), count)
		if err != nil {
			return fail(c, err, "failed to fetch financial headlines")
		}
		if len(records) == 0 {
			return notFound(c, "no trusted headlines published today")
		}
		if count == 1 {
			return c.JSON(records[0])
		}
		return c.JSON(records)
	}
}
