package expense

// RateLookup resolves a fullboard price reference to its per-day rate. The
// table is injected at construction so the aggregator stays a pure function
// of its inputs.
type RateLookup interface {
	Rate(fullboardPriceID string) (int64, bool)
}

// RateTable is an in-memory RateLookup, used in tests and for preloaded
// rate snapshots.
type RateTable map[string]int64

// Rate implements RateLookup
func (t RateTable) Rate(id string) (int64, bool) {
	rate, ok := t[id]
	return rate, ok
}
