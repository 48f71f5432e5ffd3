package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"banklar/internal/models"
	"banklar/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates the profile with standard opening balances:
// nu 100000, nequi 50000, nequi2 0, cash 20000.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	return CreateTestProfileWithBalances(t, db, 100000, 50000, 0, 20000)
}

// CreateTestProfileWithBalances creates the profile with the given opening balances.
func CreateTestProfileWithBalances(t *testing.T, db *gorm.DB, nu, nequi, nequi2, cash int64) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		Name:   fmt.Sprintf("Tester %d", nextID()),
		Nu:     nu,
		Nequi:  nequi,
		Nequi2: nequi2,
		Cash:   cash,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestSettings creates a settings row with the given low threshold.
func CreateTestSettings(t *testing.T, db *gorm.DB, lowThreshold int64) *models.Settings {
	t.Helper()

	settings := &models.Settings{
		LowThreshold: lowThreshold,
		Currency:     "COP",
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}

// CreateTestIncome inserts an income transaction stamped at the current time.
func CreateTestIncome(t *testing.T, db *gorm.DB, amount int64, account, source string, nuAllocated int64) *models.Transaction {
	t.Helper()

	record := &models.Transaction{
		ID:          uuid.New(),
		Kind:        "income",
		Amount:      amount,
		Account:     account,
		Source:      source,
		NuAllocated: nuAllocated,
	}
	record.StampNow(time.Now())
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return record
}

// CreateTestExpense inserts an expense transaction stamped at the current time.
func CreateTestExpense(t *testing.T, db *gorm.DB, amount int64, account, category string) *models.Transaction {
	t.Helper()

	record := &models.Transaction{
		ID:       uuid.New(),
		Kind:     "expense",
		Amount:   amount,
		Account:  account,
		Category: category,
	}
	record.StampNow(time.Now())
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return record
}

// CreateTestTransfer inserts a transfer transaction stamped at the current time.
func CreateTestTransfer(t *testing.T, db *gorm.DB, amount int64, from, to string) *models.Transaction {
	t.Helper()

	record := &models.Transaction{
		ID:     uuid.New(),
		Kind:   "transfer",
		Amount: amount,
		From:   from,
		To:     to,
	}
	record.StampNow(time.Now())
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test transfer: %v", err)
	}
	return record
}

// CreateTestBudget creates a budget ceiling for a category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category: category,
		Amount:   amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
