package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"banklar/internal/config"
	"banklar/internal/ledger"
)

// analyticsService exposes the pure ledger computations over the persisted
// snapshot. Every call re-reads the log; there is no incrementally
// maintained cache, which is an intentional ceiling for personal-scale logs.
type analyticsService struct {
	db             *gorm.DB
	profileService ProfileServicer
	budgetService  BudgetServicer
	cfg            *config.Config
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, profileService ProfileServicer, budgetService BudgetServicer, cfg *config.Config) AnalyticsServicer {
	return &analyticsService{db: db, profileService: profileService, budgetService: budgetService, cfg: cfg}
}

// GetBalances replays the log over the opening balances.
func (s *analyticsService) GetBalances() (ledger.Balances, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return ledger.Balances{}, err
	}
	return snap.balances(), nil
}

// GetSummary returns the dashboard read model: balances, totals, spending by
// category, the savings recommendation, and the novaklar activity count.
func (s *analyticsService) GetSummary() (*Summary, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	totals := ledger.CalcTotals(snap.entries)
	advice := ledger.SuggestSavings(totals, snap.entries)

	return &Summary{
		Balances:           snap.balances(),
		Totals:             totals,
		ExpensesByCategory: ledger.ExpensesByCategory(snap.entries),
		Savings: SavingsRecommendation{
			SavingsAdvice: advice,
			Text:          savingsText(advice),
		},
		NovaklarCount: novaklarCount(snap.entries),
	}, nil
}

// GetAlerts renders the balance signals and budget overruns as display
// messages, in the dashboard's order.
func (s *analyticsService) GetAlerts() ([]Alert, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	settings, err := s.profileService.GetSettings()
	if err != nil {
		return nil, err
	}

	balances := snap.balances()
	totals := ledger.CalcTotals(snap.entries)

	alerts := make([]Alert, 0, 4)
	for _, sig := range ledger.BalanceSignals(balances, totals, settings.LowThreshold, s.cfg.CashLowThreshold) {
		alerts = append(alerts, Alert{
			Code:     string(sig.Code),
			Severity: sig.Severity,
			Message:  signalText(sig, totals),
		})
	}

	budgets, err := s.budgetService.GetBudgets()
	if err != nil {
		return nil, err
	}
	ceilings := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		ceilings[b.Category] = b.Amount
	}

	spent := ledger.ExpensesByCategory(snap.entries)
	for _, overrun := range ledger.BudgetAlerts(spent, ceilings) {
		alerts = append(alerts, Alert{
			Code:     "budget_overrun",
			Severity: ledger.SeverityDanger,
			Message: fmt.Sprintf("Has excedido el presupuesto en %s: gastado %s / presupuesto %s.",
				overrun.Category, formatCurrency(overrun.Spent), formatCurrency(overrun.Budget)),
		})
	}

	return alerts, nil
}

// GetCategories returns the category universe: defaults, then categories
// seen on expenses, then budget-only categories.
func (s *analyticsService) GetCategories() ([]string, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetService.GetBudgets()
	if err != nil {
		return nil, err
	}
	budgetCategories := make([]string, 0, len(budgets))
	for _, b := range budgets {
		budgetCategories = append(budgetCategories, b.Category)
	}

	return ledger.Categories(snap.entries, budgetCategories), nil
}

func signalText(sig ledger.Signal, totals ledger.Totals) string {
	switch sig.Code {
	case ledger.SignalCashLow:
		return fmt.Sprintf("Poco efectivo: %s. Considera hacer un retiro.", formatCurrency(sig.Amount))
	case ledger.SignalTotalLow:
		return fmt.Sprintf("Alerta: tu saldo total es bajo (%s). Revisa tu presupuesto.", formatCurrency(sig.Amount))
	case ledger.SignalBalanceOK:
		return fmt.Sprintf("Saldo OK. Total disponible %s.", formatCurrency(sig.Amount))
	case ledger.SignalOverspending:
		return fmt.Sprintf("Estás gastando más de lo que ingresas (Gastos %s > Ingresos %s).",
			formatCurrency(totals.Expenses), formatCurrency(totals.Incomes))
	case ledger.SignalElevatedSpending:
		return fmt.Sprintf("Atención: tus gastos están en %d%% de tus ingresos.", int(math.Round(sig.Ratio*100)))
	}
	return ""
}

func savingsText(advice ledger.SavingsAdvice) string {
	switch advice.Kind {
	case ledger.SavingsNoData:
		return "Registra tus ingresos para recomendaciones."
	case ledger.SavingsReduceSpending:
		return "Muy alto gasto. Reduce gastos inmediatos (≥10%)."
	case ledger.SavingsPercent:
		return fmt.Sprintf("%d%% de tus ingresos (%s) como ahorro.", advice.Percent, formatCurrency(advice.Amount))
	}
	return "Considera ahorrar 15-20% de tus ingresos."
}

func novaklarCount(entries []ledger.Entry) int {
	count := 0
	for _, e := range entries {
		switch v := e.(type) {
		case ledger.Income:
			if v.Source == ledger.NovaklarSource || v.Account == ledger.BucketNequi2 {
				count++
			}
		case ledger.Expense:
			if v.Account == ledger.BucketNequi2 {
				count++
			}
		}
	}
	return count
}
