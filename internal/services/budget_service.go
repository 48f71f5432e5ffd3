package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "banklar/internal/errors"
	"banklar/internal/ledger"
	"banklar/internal/models"
)

// budgetService handles budget business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// SetBudget creates or updates the ceiling for a category.
func (s *budgetService) SetBudget(category string, amount int64) (*models.Budget, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var budget models.Budget
	err := s.db.Where("category = ?", category).First(&budget).Error
	switch {
	case err == nil:
		budget.Amount = amount
		if err := s.db.Save(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{Category: category, Amount: amount}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &budget, nil
}

// DeleteBudget removes the ceiling for a category.
func (s *budgetService) DeleteBudget(category string) error {
	result := s.db.Where("category = ?", category).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// GetBudgets returns all budgets ordered by category name. The order is part
// of the contract: the category universe appends budget-only categories in
// this order.
func (s *budgetService) GetBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// ReplaceBudgets swaps the whole budget set atomically. Entries with a
// non-positive amount or blank category are dropped rather than stored.
func (s *budgetService) ReplaceBudgets(budgets map[string]int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Budget{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for category, amount := range budgets {
			category = strings.TrimSpace(category)
			if category == "" || amount <= 0 {
				continue
			}
			if err := tx.Create(&models.Budget{Category: category, Amount: amount}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

// GetBudgetProgress reports spending against every budgeted category.
// Percent is floored at zero budgets and capped at 100 for display.
func (s *budgetService) GetBudgetProgress() ([]BudgetProgress, error) {
	budgets, err := s.GetBudgets()
	if err != nil {
		return nil, err
	}

	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}
	spent := ledger.ExpensesByCategory(snap.entries)

	progress := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		percent := 0
		if b.Amount > 0 {
			percent = int(spent[b.Category] * 100 / b.Amount)
			if percent > 100 {
				percent = 100
			}
		}
		progress = append(progress, BudgetProgress{
			Category: b.Category,
			Budget:   b.Amount,
			Spent:    spent[b.Category],
			Percent:  percent,
		})
	}
	return progress, nil
}
