package ledger

// Kind tags the four entry variants.
type Kind string

const (
	KindIncome         Kind = "income"
	KindExpense        Kind = "expense"
	KindTransfer       Kind = "transfer"
	KindCashConversion Kind = "cash-conversion"
)

// Valid reports whether k is a known entry kind.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer, KindCashConversion:
		return true
	}
	return false
}

// ConversionDirection tags which way a cash conversion moves money.
type ConversionDirection string

const (
	ToCash   ConversionDirection = "to_cash"
	FromCash ConversionDirection = "from_cash"
)

// Valid reports whether d is a known conversion direction.
func (d ConversionDirection) Valid() bool {
	return d == ToCash || d == FromCash
}

// DefaultCategory is assigned to expenses recorded without a category.
const DefaultCategory = "Otros"

// NovaklarSource is the recognized income source label that forces the
// destination bucket to nequi2 regardless of the requested account.
const NovaklarSource = "novaklar"

// Meta carries the fields common to all entry variants. Timestamp is a
// millisecond epoch; ties between equal timestamps replay in insertion order.
type Meta struct {
	ID          string
	Timestamp   int64
	Description string
}

func (m Meta) entryMeta() Meta { return m }

// Entry is the sum type over the four transaction kinds. The interface is
// sealed: only the variants in this package implement it.
type Entry interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Value returns the entry amount in minor currency units.
	Value() int64
	// Touches reports whether the entry debits or credits the given bucket.
	Touches(b Bucket) bool
	// SearchFields returns the free-text fields matched by the filter.
	SearchFields() []string

	entryMeta() Meta
	apply(run map[Bucket]int64)
}

// MetaOf returns the common metadata of any entry.
func MetaOf(e Entry) Meta { return e.entryMeta() }

// Income credits a bucket. When NuAllocated is positive, up to that much is
// routed to the nu bucket first and only the remainder reaches Account.
type Income struct {
	Meta
	Amount      int64
	Account     Bucket
	Source      string
	NuAllocated int64
}

func (e Income) Kind() Kind   { return KindIncome }
func (e Income) Value() int64 { return e.Amount }

// Touches matches only the nominal account, even for split incomes: the
// account filter is defined on the requested destination, not on where the
// split routed the money.
func (e Income) Touches(b Bucket) bool { return b == e.Account }

func (e Income) SearchFields() []string { return []string{e.Description, e.Source} }

func (e Income) apply(run map[Bucket]int64) {
	if e.NuAllocated <= 0 {
		run[e.Account] += e.Amount
		return
	}
	allocated := e.NuAllocated
	if allocated > e.Amount {
		allocated = e.Amount
	}
	run[BucketNu] += allocated
	if rest := e.Amount - allocated; rest > 0 {
		run[e.Account] += rest
	}
}

// Expense debits a bucket, tagged with a spending category.
type Expense struct {
	Meta
	Amount   int64
	Account  Bucket
	Category string
}

func (e Expense) Kind() Kind             { return KindExpense }
func (e Expense) Value() int64           { return e.Amount }
func (e Expense) Touches(b Bucket) bool  { return b == e.Account }
func (e Expense) SearchFields() []string { return []string{e.Description, e.Category} }

func (e Expense) apply(run map[Bucket]int64) {
	run[e.Account] -= e.Amount
}

// Transfer moves money between two distinct buckets.
type Transfer struct {
	Meta
	Amount int64
	From   Bucket
	To     Bucket
}

func (e Transfer) Kind() Kind             { return KindTransfer }
func (e Transfer) Value() int64           { return e.Amount }
func (e Transfer) Touches(b Bucket) bool  { return b == e.From || b == e.To }
func (e Transfer) SearchFields() []string { return []string{e.Description} }

func (e Transfer) apply(run map[Bucket]int64) {
	run[e.From] -= e.Amount
	run[e.To] += e.Amount
}

// CashConversion moves money between cash and a digital bucket. Construction
// guarantees the cash side: ToCash implies To == cash, FromCash implies
// From == cash, so filtering on cash matches every conversion.
type CashConversion struct {
	Meta
	Amount    int64
	Direction ConversionDirection
	From      Bucket
	To        Bucket
}

func (e CashConversion) Kind() Kind             { return KindCashConversion }
func (e CashConversion) Value() int64           { return e.Amount }
func (e CashConversion) Touches(b Bucket) bool  { return b == e.From || b == e.To }
func (e CashConversion) SearchFields() []string { return []string{e.Description} }

func (e CashConversion) apply(run map[Bucket]int64) {
	run[e.From] -= e.Amount
	run[e.To] += e.Amount
}
