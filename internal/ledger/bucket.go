// Package ledger implements the pure replay and analytics core: it turns an
// ordered transaction log plus opening balances into current balances,
// aggregate totals, category breakdowns, budget alerts, and a savings
// recommendation. The package has no persistence or transport dependencies;
// callers pass in an explicit snapshot of the log.
package ledger

// Bucket identifies one of the four fixed money locations.
type Bucket string

const (
	BucketNu     Bucket = "nu"
	BucketNequi  Bucket = "nequi"
	BucketNequi2 Bucket = "nequi2"
	BucketCash   Bucket = "cash"
)

// Buckets returns all buckets in display order.
func Buckets() []Bucket {
	return []Bucket{BucketNu, BucketNequi, BucketNequi2, BucketCash}
}

// Valid reports whether b is one of the four known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case BucketNu, BucketNequi, BucketNequi2, BucketCash:
		return true
	}
	return false
}

// Label returns the human-readable bucket name used in exports and messages.
func (b Bucket) Label() string {
	switch b {
	case BucketNu:
		return "Caja Nu"
	case BucketNequi:
		return "Nequi 1"
	case BucketNequi2:
		return "Nequi 2"
	case BucketCash:
		return "Efectivo"
	}
	return string(b)
}
