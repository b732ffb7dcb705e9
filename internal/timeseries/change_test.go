package timeseries

import (
	"math"
	"testing"
)

func TestReshapeChanges(t *testing.T) {
	raw := Record{
		"symbol": "AAPL",
		"1D":     -0.61533,
		"5D":     -2.20307,
		"1M":     2.33952,
		"3M":     -1.19059,
		"6M":     -11.62507,
		"ytd":    -13.89379,
		"1Y":     -4.03565,
		"3Y":     30.00433,
		"5Y":     118.28672,
		"10Y":    586.40078,
		"max":    163491.74133,
	}

	got := ReshapeChanges(raw)

	if got.Symbol != "AAPL" {
		t.Errorf("symbol = %q", got.Symbol)
	}

	tests := []struct {
		name  string
		field *float64
		want  float64
	}{
		{"oneDay", got.OneDay, -0.62},
		{"oneWeek", got.OneWeek, -2.2},
		{"oneMonth", got.OneMonth, 2.34},
		{"threeMonth", got.ThreeMonth, -1.19},
		{"sixMonth", got.SixMonth, -11.63},
		{"yearToDate", got.YearToDate, -13.89},
		{"oneYear", got.OneYear, -4.04},
		{"threeYear", got.ThreeYear, 30.0},
		{"fiveYear", got.FiveYear, 118.29},
		{"tenYear", got.TenYear, 586.4},
		{"max", got.Max, 163491.74},
	}

	for _, tt := range tests {
		if tt.field == nil {
			t.Errorf("%s is nil", tt.name)
			continue
		}
		if *tt.field != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, *tt.field, tt.want)
		}
	}
}

func TestReshapeChanges_PreservesNulls(t *testing.T) {
	raw := Record{
		"symbol": "GCUSD",
		"1D":     0.5,
		"max":    nil,
	}

	got := ReshapeChanges(raw)

	if got.OneDay == nil || *got.OneDay != 0.5 {
		t.Errorf("oneDay = %v", got.OneDay)
	}
	if got.Max != nil {
		t.Errorf("max should stay null, got %v", *got.Max)
	}
	if got.OneYear != nil {
		t.Errorf("missing horizon should stay null, got %v", *got.OneYear)
	}
}

func TestView_ProjectsSingleHorizon(t *testing.T) {
	raw := Record{"symbol": "AAPL", "1D": -0.61533, "1Y": -4.03565}
	changes := ReshapeChanges(raw)

	view := changes.View(HorizonOneYear)
	if view["symbol"] != "AAPL" {
		t.Errorf("symbol = %v", view["symbol"])
	}
	pct, ok := view["oneYearChangePercentage"].(*float64)
	if !ok || pct == nil || *pct != -4.04 {
		t.Errorf("oneYearChangePercentage = %v", view["oneYearChangePercentage"])
	}
	if _, exists := view["oneDayChangePercentage"]; exists {
		t.Error("view leaked another horizon")
	}
}

func TestRecord_ChangePercent(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want *float64
	}{
		{"Normal", Record{"open": 150.0, "close": 152.0}, ptr(4.0 / 3.0)},
		{"ZeroOpen", Record{"open": 0.0, "close": 10.0}, nil},
		{"MissingClose", Record{"open": 150.0}, nil},
		{"NonNumeric", Record{"open": "150", "close": 152.0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rec.ChangePercent()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
