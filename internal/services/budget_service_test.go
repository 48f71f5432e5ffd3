package services

import (
	"testing"

	"banklar/internal/ledger"
	"banklar/internal/models"
	"banklar/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.SetBudget("Comida", 50000)
		testutil.AssertNoError(t, err)
		if budget.ID == 0 || budget.Amount != 50000 {
			t.Errorf("unexpected budget %+v", budget)
		}

		updated, err := svc.SetBudget("Comida", 60000)
		testutil.AssertNoError(t, err)
		if updated.ID != budget.ID || updated.Amount != 60000 {
			t.Errorf("expected in-place update, got %+v", updated)
		}

		var count int64
		db.Model(&models.Budget{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("trims_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.SetBudget("  Salud  ", 10000)
		testutil.AssertNoError(t, err)
		if budget.Category != "Salud" {
			t.Errorf("expected trimmed category, got %q", budget.Category)
		}
	})

	t.Run("rejects_blank_category_and_bad_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.SetBudget("   ", 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.SetBudget("Comida", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	testutil.CreateTestBudget(t, db, "Comida", 50000)

	testutil.AssertNoError(t, svc.DeleteBudget("Comida"))
	testutil.AssertAppError(t, svc.DeleteBudget("Comida"), "BUDGET_NOT_FOUND")
}

func TestGetBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	testutil.CreateTestBudget(t, db, "Transporte", 20000)
	testutil.CreateTestBudget(t, db, "Comida", 50000)

	budgets, err := svc.GetBudgets()
	testutil.AssertNoError(t, err)
	if len(budgets) != 2 || budgets[0].Category != "Comida" || budgets[1].Category != "Transporte" {
		t.Errorf("expected category-ordered budgets, got %+v", budgets)
	}
}

func TestReplaceBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	testutil.CreateTestBudget(t, db, "Viejo", 1000)

	err := svc.ReplaceBudgets(map[string]int64{
		"Comida": 50000,
		"Salud":  20000,
		"":       999, // dropped
		"Basura": 0,   // dropped
	})
	testutil.AssertNoError(t, err)

	budgets, err := svc.GetBudgets()
	testutil.AssertNoError(t, err)
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets after replace, got %+v", budgets)
	}
	if budgets[0].Category != "Comida" || budgets[1].Category != "Salud" {
		t.Errorf("unexpected budgets %+v", budgets)
	}
}

func TestGetBudgetProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	txSvc := NewTransactionService(db)
	testutil.CreateTestProfile(t, db)
	testutil.CreateTestBudget(t, db, "Comida", 10000)
	testutil.CreateTestBudget(t, db, "Salud", 5000)

	_, err := txSvc.RecordExpense(4000, ledger.BucketNu, "Comida", "")
	testutil.AssertNoError(t, err)
	_, err = txSvc.RecordExpense(8000, ledger.BucketNu, "Salud", "")
	testutil.AssertNoError(t, err)

	progress, err := svc.GetBudgetProgress()
	testutil.AssertNoError(t, err)
	if len(progress) != 2 {
		t.Fatalf("expected 2 rows, got %+v", progress)
	}
	if progress[0].Category != "Comida" || progress[0].Spent != 4000 || progress[0].Percent != 40 {
		t.Errorf("unexpected progress %+v", progress[0])
	}
	// Overrun percent is capped at 100 for display.
	if progress[1].Category != "Salud" || progress[1].Percent != 100 {
		t.Errorf("unexpected progress %+v", progress[1])
	}
}
