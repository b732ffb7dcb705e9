package service

import (
	"context"
	"net/url"

	"github.com/richtv/market-content-api/internal/marketclock"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

const economicCalendarPath = "/stable/economic-calendar"

type MacroService struct {
	client *upstream.Client
}

func NewMacroService(client *upstream.Client) *MacroService {
	return &MacroService{client: client}
}

// EconomicCalendar returns the provider's economic events for the trailing
// days window, inclusive of today.
func (s *MacroService) EconomicCalendar(ctx context.Context, days int) ([]timeseries.Record, error) {
	window, err := marketclock.DateRange(days)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"from": {window.From},
		"to":   {window.To},
	}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, economicCalendarPath, query, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []timeseries.Record{}
	}
	return records, nil
}

// RandomCalendarRecords returns count uniformly sampled events from the
// trailing days window.
func (s *MacroService) RandomCalendarRecords(ctx context.Context, days, count int) ([]timeseries.Record, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	all, err := s.EconomicCalendar(ctx, days)
	if err != nil {
		return nil, err
	}
	return timeseries.Sample(all, count), nil
}
