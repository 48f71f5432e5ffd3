package ledger

import "sort"

// Balances holds the reported balance of each bucket plus their sum, in minor
// currency units. Reported values are clamped to be non-negative.
type Balances struct {
	Nu     int64 `json:"nu"`
	Nequi  int64 `json:"nequi"`
	Nequi2 int64 `json:"nequi2"`
	Cash   int64 `json:"cash"`
	Total  int64 `json:"total"`
}

// Of returns the reported balance of the given bucket.
func (b Balances) Of(bucket Bucket) int64 {
	switch bucket {
	case BucketNu:
		return b.Nu
	case BucketNequi:
		return b.Nequi
	case BucketNequi2:
		return b.Nequi2
	case BucketCash:
		return b.Cash
	}
	return 0
}

// Replay folds the entry log over the opening balances and returns the
// current balances. Entries are replayed in timestamp order; entries sharing
// a timestamp keep their insertion order, so replay is deterministic.
//
// Running balances are allowed to go negative mid-replay: each bucket and the
// total are floored at zero only at the reporting step. Callers that need
// solvency guarantees must check balances before appending a debiting entry;
// the replay itself never rejects an entry.
func Replay(opening Balances, entries []Entry) Balances {
	run := map[Bucket]int64{
		BucketNu:     opening.Nu,
		BucketNequi:  opening.Nequi,
		BucketNequi2: opening.Nequi2,
		BucketCash:   opening.Cash,
	}

	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].entryMeta().Timestamp < ordered[j].entryMeta().Timestamp
	})

	for _, e := range ordered {
		e.apply(run)
	}

	// The total is computed from the unclamped running values, then floored,
	// matching the per-bucket clamp-at-report-only rule.
	sum := run[BucketNu] + run[BucketNequi] + run[BucketNequi2] + run[BucketCash]

	return Balances{
		Nu:     clamp(run[BucketNu]),
		Nequi:  clamp(run[BucketNequi]),
		Nequi2: clamp(run[BucketNequi2]),
		Cash:   clamp(run[BucketCash]),
		Total:  clamp(sum),
	}
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
