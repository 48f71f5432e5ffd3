package models

import (
	"fmt"
	"time"

	"banklar/internal/ledger"
	"banklar/internal/uuid"

	"gorm.io/gorm"
)

// Transaction is the persisted wire record for a log entry. It is a tagged
// union: Kind decides which of the optional fields are meaningful. Records
// are immutable once created; deletion removes the row wholesale.
//
// Seq preserves insertion order so that entries sharing a millisecond
// timestamp replay deterministically.
type Transaction struct {
	Seq            int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	ID             string `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	Kind           string `gorm:"not null;index" json:"type"`
	Amount         int64  `gorm:"not null" json:"amount"`
	Account        string `json:"account,omitempty"`
	Source         string `json:"source,omitempty"`
	NuAllocated    int64  `json:"nuAllocated,omitempty"`
	Category       string `json:"category,omitempty"`
	From           string `gorm:"column:from_bucket" json:"from,omitempty"`
	To             string `gorm:"column:to_bucket" json:"to,omitempty"`
	ConversionType string `json:"conversionType,omitempty"`
	Description    string `json:"description,omitempty"`

	// Timestamp is a millisecond epoch; Hour and Minute are derived from it
	// for display. Date is the legacy YYYY-MM-DD string kept for imports of
	// pre-timestamp records.
	Timestamp int64  `gorm:"not null;index" json:"timestamp"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Date      string `json:"date,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

// Entry converts the wire record into its ledger variant, validating the
// fields the variant requires.
func (t *Transaction) Entry() (ledger.Entry, error) {
	meta := ledger.Meta{ID: t.ID, Timestamp: t.Timestamp, Description: t.Description}

	switch ledger.Kind(t.Kind) {
	case ledger.KindIncome:
		account := ledger.Bucket(t.Account)
		if !account.Valid() {
			return nil, fmt.Errorf("income %s: invalid account %q", t.ID, t.Account)
		}
		return ledger.Income{
			Meta:        meta,
			Amount:      t.Amount,
			Account:     account,
			Source:      t.Source,
			NuAllocated: t.NuAllocated,
		}, nil

	case ledger.KindExpense:
		account := ledger.Bucket(t.Account)
		if !account.Valid() {
			return nil, fmt.Errorf("expense %s: invalid account %q", t.ID, t.Account)
		}
		category := t.Category
		if category == "" {
			category = ledger.DefaultCategory
		}
		return ledger.Expense{
			Meta:     meta,
			Amount:   t.Amount,
			Account:  account,
			Category: category,
		}, nil

	case ledger.KindTransfer:
		from, to := ledger.Bucket(t.From), ledger.Bucket(t.To)
		if !from.Valid() || !to.Valid() {
			return nil, fmt.Errorf("transfer %s: invalid buckets %q -> %q", t.ID, t.From, t.To)
		}
		if from == to {
			return nil, fmt.Errorf("transfer %s: source and destination are both %q", t.ID, t.From)
		}
		return ledger.Transfer{Meta: meta, Amount: t.Amount, From: from, To: to}, nil

	case ledger.KindCashConversion:
		direction := ledger.ConversionDirection(t.ConversionType)
		if !direction.Valid() {
			return nil, fmt.Errorf("conversion %s: invalid direction %q", t.ID, t.ConversionType)
		}
		from, to := ledger.Bucket(t.From), ledger.Bucket(t.To)
		if !from.Valid() || !to.Valid() {
			return nil, fmt.Errorf("conversion %s: invalid buckets %q -> %q", t.ID, t.From, t.To)
		}
		if direction == ledger.ToCash && to != ledger.BucketCash {
			return nil, fmt.Errorf("conversion %s: to_cash must end in cash, got %q", t.ID, t.To)
		}
		if direction == ledger.FromCash && from != ledger.BucketCash {
			return nil, fmt.Errorf("conversion %s: from_cash must start from cash, got %q", t.ID, t.From)
		}
		return ledger.CashConversion{
			Meta:      meta,
			Amount:    t.Amount,
			Direction: direction,
			From:      from,
			To:        to,
		}, nil
	}

	return nil, fmt.Errorf("transaction %s: unknown kind %q", t.ID, t.Kind)
}

// Entries converts a slice of records in order, skipping nothing: a single
// malformed record fails the whole conversion.
func Entries(records []Transaction) ([]ledger.Entry, error) {
	entries := make([]ledger.Entry, 0, len(records))
	for i := range records {
		e, err := records[i].Entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// StampNow fills Timestamp, Hour, Minute, and the legacy Date field from the
// given instant.
func (t *Transaction) StampNow(now time.Time) {
	t.Timestamp = now.UnixMilli()
	t.Hour = now.Hour()
	t.Minute = now.Minute()
	t.Date = now.Format("2006-01-02")
}
