package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "banklar/internal/errors"
	"banklar/internal/ledger"
	"banklar/internal/models"
	"banklar/internal/pagination"
)

// transactionService handles transaction log business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// RecordIncome appends an income entry. The "novaklar" source label forces
// the destination bucket to nequi2 regardless of the requested account. A
// positive nuAllocated routes that much to the nu bucket ahead of crediting
// the remainder to the destination.
func (s *transactionService) RecordIncome(amount int64, account ledger.Bucket, source string, nuAllocated int64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if nuAllocated < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nu allocation must not be negative")
	}
	if !account.Valid() {
		return nil, apperrors.ErrInvalidBucket
	}

	now := time.Now()
	if source == ledger.NovaklarSource {
		account = ledger.BucketNequi2
		if description == "" {
			description = fmt.Sprintf("Ingreso Novaklar %s", formatTimeOfDay(now))
		}
	}

	record := &models.Transaction{
		Kind:        string(ledger.KindIncome),
		Amount:      amount,
		Account:     string(account),
		Source:      source,
		NuAllocated: nuAllocated,
		Description: description,
	}
	record.StampNow(now)

	return s.append(record)
}

// RecordExpense appends an expense entry after checking the source bucket
// can cover it. An empty category defaults to Otros.
func (s *transactionService) RecordExpense(amount int64, account ledger.Bucket, category, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !account.Valid() {
		return nil, apperrors.ErrInvalidBucket
	}
	if category == "" {
		category = ledger.DefaultCategory
	}

	if err := s.checkFunds(account, amount); err != nil {
		return nil, err
	}

	record := &models.Transaction{
		Kind:        string(ledger.KindExpense),
		Amount:      amount,
		Account:     string(account),
		Category:    category,
		Description: description,
	}
	record.StampNow(time.Now())

	return s.append(record)
}

// RecordTransfer appends a transfer between two distinct buckets after
// checking the source bucket can cover it.
func (s *transactionService) RecordTransfer(amount int64, from, to ledger.Bucket) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !from.Valid() || !to.Valid() {
		return nil, apperrors.ErrInvalidBucket
	}
	if from == to {
		return nil, apperrors.ErrSameBucketTransfer
	}

	if err := s.checkFunds(from, amount); err != nil {
		return nil, err
	}

	record := &models.Transaction{
		Kind:        string(ledger.KindTransfer),
		Amount:      amount,
		From:        string(from),
		To:          string(to),
		Description: fmt.Sprintf("Transferencia: %s → %s", from.Label(), to.Label()),
	}
	record.StampNow(time.Now())

	return s.append(record)
}

// RecordConversion appends a cash conversion. The direction fixes the cash
// side: to_cash debits a digital bucket into cash, from_cash the reverse.
// The cash-side bucket may be omitted and is filled in from the direction.
func (s *transactionService) RecordConversion(amount int64, direction ledger.ConversionDirection, from, to ledger.Bucket) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !direction.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "conversion type must be to_cash or from_cash")
	}

	switch direction {
	case ledger.ToCash:
		if to == "" {
			to = ledger.BucketCash
		}
		if to != ledger.BucketCash || !from.Valid() || from == ledger.BucketCash {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidBucket, "to_cash converts a digital bucket into cash")
		}
	case ledger.FromCash:
		if from == "" {
			from = ledger.BucketCash
		}
		if from != ledger.BucketCash || !to.Valid() || to == ledger.BucketCash {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidBucket, "from_cash converts cash into a digital bucket")
		}
	}

	if err := s.checkFunds(from, amount); err != nil {
		return nil, err
	}

	record := &models.Transaction{
		Kind:           string(ledger.KindCashConversion),
		Amount:         amount,
		ConversionType: string(direction),
		From:           string(from),
		To:             string(to),
		Description:    fmt.Sprintf("Conversión: %s → %s", from.Label(), to.Label()),
	}
	record.StampNow(time.Now())

	return s.append(record)
}

// GetTransactionByID retrieves a transaction by its id.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var record models.Transaction
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

// DeleteTransaction removes at most one entry with the given id. Deleting an
// absent id is a no-op, not an error: removal is idempotent and its effect is
// reverted implicitly on the next replay.
func (s *transactionService) DeleteTransaction(id string) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListTransactions returns the filtered log, newest first. Filtering runs on
// the ledger entries so transfer and conversion bucket matching follow the
// replay semantics, not a column comparison.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Transaction, 0, len(snap.records))
	for i := range snap.records {
		if ledger.Matches(snap.entries[i], filter.Kind, filter.Bucket, filter.Search) {
			matched = append(matched, snap.records[i])
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	result := pagination.NewPageResponse(matched[start:end], page.Page, page.PageSize, total)
	return &result, nil
}

// checkFunds rejects a debit that exceeds the current clamped balance of the
// source bucket. The guard runs before the append; replay itself never
// enforces solvency.
func (s *transactionService) checkFunds(source ledger.Bucket, amount int64) error {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return err
	}
	if amount > snap.balances().Of(source) {
		return apperrors.WithMessage(apperrors.ErrInsufficientBalance,
			fmt.Sprintf("Insufficient balance in %s", source.Label()))
	}
	return nil
}

// append persists a validated record. The write runs in a database
// transaction: on persistence failure nothing is applied, so the stored log
// never reflects a half-recorded change.
func (s *transactionService) append(record *models.Transaction) (*models.Transaction, error) {
	// A profile must exist before the log accepts entries.
	if _, err := loadProfile(s.db); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func loadProfile(db *gorm.DB) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

func formatTimeOfDay(t time.Time) string {
	return t.Format("15:04")
}
