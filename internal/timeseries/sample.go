package timeseries

import "math/rand"

// Sample returns a uniformly random subset of min(count, len(items)) elements.
// The input is never mutated and the result carries no ordering guarantee.
func Sample[T any](items []T, count int) []T {
	if count <= 0 || len(items) == 0 {
		return []T{}
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// PickOne returns a single uniformly random element, or false on empty input.
func PickOne[T any](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[rand.Intn(len(items))], true
}
