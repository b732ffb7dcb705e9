package timeseries

import "github.com/shopspring/decimal"

// PriceChanges is the normalized multi-horizon percentage-change record.
// Horizons the provider leaves out stay null instead of collapsing to zero.
type PriceChanges struct {
	Symbol     string   `json:"symbol"`
	OneDay     *float64 `json:"oneDay"`
	OneWeek    *float64 `json:"oneWeek"`
	OneMonth   *float64 `json:"oneMonth"`
	ThreeMonth *float64 `json:"threeMonth"`
	SixMonth   *float64 `json:"sixMonth"`
	YearToDate *float64 `json:"yearToDate"`
	OneYear    *float64 `json:"oneYear"`
	ThreeYear  *float64 `json:"threeYear"`
	FiveYear   *float64 `json:"fiveYear"`
	TenYear    *float64 `json:"tenYear"`
	Max        *float64 `json:"max"`
}

// Horizon names a single lookback period of a PriceChanges set.
type Horizon string

const (
	HorizonOneDay   Horizon = "oneDay"
	HorizonOneWeek  Horizon = "oneWeek"
	HorizonOneMonth Horizon = "oneMonth"
	HorizonSixMonth Horizon = "sixMonth"
	HorizonOneYear  Horizon = "oneYear"
)

// ReshapeChanges maps the provider's flat change record (keys 1D, 5D, 1M,
// 3M, 6M, ytd, 1Y, 3Y, 5Y, 10Y, max) into a PriceChanges set with every
// horizon rounded to two decimal places.
func ReshapeChanges(raw Record) PriceChanges {
	symbol, _ := raw["symbol"].(string)

	return PriceChanges{
		Symbol:     symbol,
		OneDay:     roundPercent(raw, "1D"),
		OneWeek:    roundPercent(raw, "5D"),
		OneMonth:   roundPercent(raw, "1M"),
		ThreeMonth: roundPercent(raw, "3M"),
		SixMonth:   roundPercent(raw, "6M"),
		YearToDate: roundPercent(raw, "ytd"),
		OneYear:    roundPercent(raw, "1Y"),
		ThreeYear:  roundPercent(raw, "3Y"),
		FiveYear:   roundPercent(raw, "5Y"),
		TenYear:    roundPercent(raw, "10Y"),
		Max:        roundPercent(raw, "max"),
	}
}

// View projects one horizon plus the symbol from an already reshaped set,
// so a single logical operation never fetches the changes twice.
func (p PriceChanges) View(h Horizon) Record {
	view := Record{"symbol": p.Symbol}

	switch h {
	case HorizonOneDay:
		view["oneDayChangePercentage"] = p.OneDay
	case HorizonOneWeek:
		view["oneWeekChangePercentage"] = p.OneWeek
	case HorizonOneMonth:
		view["oneMonthChangePercentage"] = p.OneMonth
	case HorizonSixMonth:
		view["sixMonthChangePercentage"] = p.SixMonth
	case HorizonOneYear:
		view["oneYearChangePercentage"] = p.OneYear
	}
	return view
}

// roundPercent rounds half away from zero to two decimals, matching how the
// percentages are displayed downstream.
func roundPercent(raw Record, key string) *float64 {
	f, ok := raw.Float(key)
	if !ok {
		return nil
	}

	rounded, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return &rounded
}
