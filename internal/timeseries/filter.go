package timeseries

import (
	"sort"

	"github.com/richtv/market-content-api/internal/marketclock"
)

// FilterSort keeps the records whose timestamps fall inside the span, both
// bounds inclusive, and returns them oldest first. The provider sends rows
// newest first, so the sort is a real reversal. Records without a parsable
// timestamp are dropped rather than treated as errors; nil or empty input
// yields an empty slice.
func FilterSort(records []Record, span marketclock.Span) []Record {
	type stamped struct {
		rec Record
		at  int64
	}

	kept := make([]stamped, 0, len(records))
	for _, rec := range records {
		t, ok := rec.Time()
		if !ok || !span.Contains(t) {
			continue
		}
		kept = append(kept, stamped{rec: rec, at: t.Unix()})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].at < kept[j].at
	})

	out := make([]Record, len(kept))
	for i, s := range kept {
		out[i] = s.rec
	}
	return out
}
