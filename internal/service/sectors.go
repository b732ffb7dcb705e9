package service

import (
	"context"
	"net/url"

	"github.com/richtv/market-content-api/internal/marketclock"
	"github.com/richtv/market-content-api/internal/timeseries"
	"github.com/richtv/market-content-api/internal/upstream"
)

const sectorPerformancePath = "/stable/historical-sector-performance"

type SectorService struct {
	client *upstream.Client
}

func NewSectorService(client *upstream.Client) *SectorService {
	return &SectorService{client: client}
}

// HistoricalPerformance returns daily change-percent rows for one sector
// display name (Energy, Healthcare, Technology, ...) over the trailing
// days window.
func (s *SectorService) HistoricalPerformance(ctx context.Context, sector string, days int) ([]timeseries.Record, error) {
	if sector == "" {
		return nil, ErrSectorRequired
	}

	window, err := marketclock.DateRange(days)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"sector": {sector},
		"from":   {window.From},
		"to":     {window.To},
	}

	var records []timeseries.Record
	if err := s.client.GetJSON(ctx, sectorPerformancePath, query, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []timeseries.Record{}
	}
	return records, nil
}
