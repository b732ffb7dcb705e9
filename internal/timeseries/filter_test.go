package timeseries

import (
	"reflect"
	"testing"
	"time"

	"github.com/richtv/market-content-api/internal/marketclock"
)

func spanOver(t *testing.T, cutoff, now string) marketclock.Span {
	t.Helper()
	c, err := marketclock.ParseMarketTime(cutoff)
	if err != nil {
		t.Fatal(err)
	}
	n, err := marketclock.ParseMarketTime(now)
	if err != nil {
		t.Fatal(err)
	}
	return marketclock.Span{Cutoff: c, Now: n}
}

func dates(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = r["date"].(string)
	}
	return out
}

func TestFilterSort_OrdersAscending(t *testing.T) {
	records := []Record{
		{"date": "2024-01-03 10:00:00", "close": 3.0},
		{"date": "2024-01-01 09:00:00", "close": 1.0},
		{"date": "2024-01-02 11:00:00", "close": 2.0},
	}
	span := spanOver(t, "2024-01-01 00:00:00", "2024-01-04 00:00:00")

	got := dates(FilterSort(records, span))
	want := []string{"2024-01-01 09:00:00", "2024-01-02 11:00:00", "2024-01-03 10:00:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterSort_WindowBoundsInclusive(t *testing.T) {
	records := []Record{
		{"date": "2024-01-01 09:00:00"},
		{"date": "2024-01-01 09:59:59"},
		{"date": "2024-01-01 10:00:00"},
		{"date": "2024-01-01 15:00:00"},
		{"date": "2024-01-01 15:00:01"},
	}
	span := spanOver(t, "2024-01-01 10:00:00", "2024-01-01 15:00:00")

	got := dates(FilterSort(records, span))
	want := []string{"2024-01-01 10:00:00", "2024-01-01 15:00:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterSort_DropsRecordsWithoutTimestamp(t *testing.T) {
	records := []Record{
		{"close": 1.0},
		{"date": "garbage"},
		{"date": 42.0},
		{"datetime": "2024-01-01 12:00:00", "close": 2.0},
	}
	span := spanOver(t, "2024-01-01 00:00:00", "2024-01-02 00:00:00")

	got := FilterSort(records, span)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0]["close"] != 2.0 {
		t.Errorf("kept wrong record: %v", got[0])
	}
}

func TestFilterSort_EmptyAndDegenerate(t *testing.T) {
	span := spanOver(t, "2024-01-01 00:00:00", "2024-01-02 00:00:00")

	if got := FilterSort(nil, span); got == nil || len(got) != 0 {
		t.Errorf("nil input: got %v, want empty slice", got)
	}
	if got := FilterSort([]Record{}, span); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}

	// cutoff after now keeps nothing
	inverted := marketclock.Span{Cutoff: span.Now, Now: span.Cutoff}
	records := []Record{{"date": "2024-01-01 12:00:00"}}
	if got := FilterSort(records, inverted); len(got) != 0 {
		t.Errorf("degenerate window: got %v", got)
	}
}

func TestFilterSort_Idempotent(t *testing.T) {
	records := []Record{
		{"date": "2024-01-03 10:00:00"},
		{"date": "2024-01-01 09:00:00"},
		{"date": "2024-01-05 09:00:00"},
		{"date": "2024-01-02 11:00:00"},
	}
	span := spanOver(t, "2024-01-01 00:00:00", "2024-01-04 00:00:00")

	once := FilterSort(records, span)
	twice := FilterSort(once, span)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: %v vs %v", dates(once), dates(twice))
	}
}

func TestFilterSort_MonotonicOutput(t *testing.T) {
	records := []Record{
		{"date": "2024-02-10 15:00:00"},
		{"date": "2024-02-08 09:30:00"},
		{"date": "2024-02-09 12:00:00"},
		{"date": "2024-02-08 16:00:00"},
		{"date": "2024-02-10 09:30:00"},
	}
	span := spanOver(t, "2024-02-08 00:00:00", "2024-02-11 00:00:00")

	out := FilterSort(records, span)
	if len(out) != len(records) {
		t.Fatalf("expected all records kept, got %d", len(out))
	}

	var prev time.Time
	for i, rec := range out {
		at, ok := rec.Time()
		if !ok {
			t.Fatalf("record %d lost its timestamp", i)
		}
		if at.Before(prev) {
			t.Fatalf("output not monotonic at index %d", i)
		}
		prev = at
	}
}
