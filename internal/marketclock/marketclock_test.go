package marketclock

import (
	"testing"
	"time"
)

func fixNow(t *testing.T, instant time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return instant }
	t.Cleanup(func() { nowFunc = old })
}

func TestDateRange(t *testing.T) {
	fixNow(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC))

	tests := []struct {
		name string
		days int
		from string
		to   string
	}{
		{"SingleDay", 1, "2024-03-15", "2024-03-15"},
		{"OneWeek", 7, "2024-03-09", "2024-03-15"},
		{"ThirtyDays", 30, "2024-02-15", "2024-03-15"},
		{"AcrossYearBoundary", 75, "2024-01-01", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := DateRange(tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.From != tt.from || w.To != tt.to {
				t.Errorf("got {%s %s}, want {%s %s}", w.From, w.To, tt.from, tt.to)
			}
		})
	}
}

func TestDateRange_InclusiveSpan(t *testing.T) {
	fixNow(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	for _, days := range []int{1, 2, 10, 90, 365} {
		w, err := DateRange(days)
		if err != nil {
			t.Fatalf("days=%d: %v", days, err)
		}
		from, _ := time.Parse(DateLayout, w.From)
		to, _ := time.Parse(DateLayout, w.To)
		got := int(to.Sub(from).Hours()/24) + 1
		if got != days {
			t.Errorf("days=%d: window spans %d days", days, got)
		}
	}
}

func TestDateRange_Invalid(t *testing.T) {
	for _, days := range []int{0, -1, -30} {
		if _, err := DateRange(days); err != ErrInvalidDays {
			t.Errorf("days=%d: expected ErrInvalidDays, got %v", days, err)
		}
	}
}

func TestHourWindow_ExactSpan(t *testing.T) {
	fixNow(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC))

	for _, hours := range []float64{1, 4, 24, 48.5, 168} {
		span, err := HourWindow(hours)
		if err != nil {
			t.Fatalf("hours=%v: %v", hours, err)
		}
		if got := span.Now.Sub(span.Cutoff).Hours(); got != hours {
			t.Errorf("hours=%v: span covers %v hours", hours, got)
		}
		if span.Now.Location() != Eastern {
			t.Errorf("hours=%v: span not in exchange time", hours)
		}
	}
}

func TestHourWindow_Invalid(t *testing.T) {
	for _, hours := range []float64{0, -1, -0.5} {
		if _, err := HourWindow(hours); err != ErrInvalidHours {
			t.Errorf("hours=%v: expected ErrInvalidHours, got %v", hours, err)
		}
	}
}

func TestSpan_RequestRange(t *testing.T) {
	fixNow(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		hours      float64
		bufferDays int
	}{
		{1, 3},   // ceil(1/24)+2
		{24, 3},  // ceil(24/24)+2
		{25, 4},  // ceil(25/24)+2
		{168, 9}, // ceil(168/24)+2
	}

	for _, tt := range tests {
		span, err := HourWindow(tt.hours)
		if err != nil {
			t.Fatalf("hours=%v: %v", tt.hours, err)
		}
		from, to := span.RequestRange()

		wantFrom := span.Cutoff.AddDate(0, 0, -tt.bufferDays).Format(DateLayout)
		if from != wantFrom {
			t.Errorf("hours=%v: from=%s, want %s", tt.hours, from, wantFrom)
		}
		if to != span.Now.Format(DateLayout) {
			t.Errorf("hours=%v: to=%s, want %s", tt.hours, to, span.Now.Format(DateLayout))
		}
	}
}

func TestSpan_Contains(t *testing.T) {
	span := Span{
		Cutoff: time.Date(2024, 1, 1, 9, 0, 0, 0, Eastern),
		Now:    time.Date(2024, 1, 2, 9, 0, 0, 0, Eastern),
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"AtCutoff", span.Cutoff, true},
		{"AtNow", span.Now, true},
		{"Inside", time.Date(2024, 1, 1, 15, 0, 0, 0, Eastern), true},
		{"BeforeCutoff", span.Cutoff.Add(-time.Second), false},
		{"AfterNow", span.Now.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestParseMarketTime(t *testing.T) {
	got, err := ParseMarketTime("2024-01-03 10:30:00")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 3, 10, 30, 0, 0, Eastern)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = ParseMarketTime("2024-01-03")
	if err != nil {
		t.Fatal(err)
	}
	want = time.Date(2024, 1, 3, 0, 0, 0, 0, Eastern)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseMarketTime("not a timestamp"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestFormatHelpers(t *testing.T) {
	instant := time.Date(2024, 7, 4, 14, 5, 9, 0, Eastern)

	if got := FormatDate(instant); got != "2024-07-04" {
		t.Errorf("FormatDate = %s", got)
	}
	if got := FormatDateTime(instant); got != "2024-07-04 14:05:09" {
		t.Errorf("FormatDateTime = %s", got)
	}
}
