package ledger

import (
	"sort"
	"strings"
)

// Totals aggregates entry amounts by kind, independent of account.
type Totals struct {
	Incomes     int64 `json:"incomes"`
	Expenses    int64 `json:"expenses"`
	Transfers   int64 `json:"transfers"`
	Conversions int64 `json:"conversions"`
}

// CalcTotals sums amounts across the log grouped by kind.
func CalcTotals(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		switch e.Kind() {
		case KindIncome:
			t.Incomes += e.Value()
		case KindExpense:
			t.Expenses += e.Value()
		case KindTransfer:
			t.Transfers += e.Value()
		case KindCashConversion:
			t.Conversions += e.Value()
		}
	}
	return t
}

// ExpensesByCategory accumulates expense amounts keyed by category. The
// result never contains zero or negative entries.
func ExpensesByCategory(entries []Entry) map[string]int64 {
	spent := make(map[string]int64)
	for _, e := range entries {
		exp, ok := e.(Expense)
		if !ok {
			continue
		}
		category := exp.Category
		if category == "" {
			category = DefaultCategory
		}
		spent[category] += exp.Amount
	}
	for category, amount := range spent {
		if amount <= 0 {
			delete(spent, category)
		}
	}
	return spent
}

// BudgetAlert flags a category whose spend strictly exceeds its ceiling.
type BudgetAlert struct {
	Category string `json:"category"`
	Spent    int64  `json:"spent"`
	Budget   int64  `json:"budget"`
}

// BudgetAlerts returns an overrun alert for every budgeted category with a
// positive ceiling where spent > budget. Spending exactly the budget is not
// an overrun, and a zero budget never fires. Alerts are ordered by category.
func BudgetAlerts(spent, budgets map[string]int64) []BudgetAlert {
	categories := make([]string, 0, len(budgets))
	for category := range budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var alerts []BudgetAlert
	for _, category := range categories {
		budget := budgets[category]
		if budget > 0 && spent[category] > budget {
			alerts = append(alerts, BudgetAlert{
				Category: category,
				Spent:    spent[category],
				Budget:   budget,
			})
		}
	}
	return alerts
}

// Severity classifies a signal for display purposes.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// SignalCode identifies a balance or spending condition.
type SignalCode string

const (
	SignalCashLow          SignalCode = "cash_low"
	SignalTotalLow         SignalCode = "total_low"
	SignalBalanceOK        SignalCode = "balance_ok"
	SignalOverspending     SignalCode = "overspending"
	SignalElevatedSpending SignalCode = "elevated_spending"
)

// Signal is an alert condition derived from balances and totals.
type Signal struct {
	Code     SignalCode `json:"code"`
	Severity Severity   `json:"severity"`
	Amount   int64      `json:"amount,omitempty"`
	Ratio    float64    `json:"ratio,omitempty"`
}

// BalanceSignals derives alert conditions from the current balances and
// totals. lowThreshold is the user-configured total floor; cashLowThreshold
// is the fixed cash floor (currency-unit-sensitive, so injected rather than
// hardcoded).
func BalanceSignals(b Balances, t Totals, lowThreshold, cashLowThreshold int64) []Signal {
	var signals []Signal

	if b.Cash > 0 && b.Cash < cashLowThreshold {
		signals = append(signals, Signal{Code: SignalCashLow, Severity: SeverityWarning, Amount: b.Cash})
	}

	if b.Total < lowThreshold {
		signals = append(signals, Signal{Code: SignalTotalLow, Severity: SeverityDanger, Amount: b.Total})
	} else {
		signals = append(signals, Signal{Code: SignalBalanceOK, Severity: SeverityGood, Amount: b.Total})
	}

	if t.Expenses > t.Incomes {
		signals = append(signals, Signal{Code: SignalOverspending, Severity: SeverityDanger, Amount: t.Expenses})
	} else if t.Incomes > 0 {
		ratio := float64(t.Expenses) / float64(t.Incomes)
		if ratio > 0.8 {
			signals = append(signals, Signal{Code: SignalElevatedSpending, Severity: SeverityInfo, Ratio: ratio})
		}
	}

	return signals
}

// SavingsKind classifies the savings recommendation.
type SavingsKind string

const (
	SavingsNoData         SavingsKind = "no_data"
	SavingsReduceSpending SavingsKind = "reduce_spending"
	SavingsPercent        SavingsKind = "percent"
	SavingsGeneric        SavingsKind = "generic"
)

// SavingsAdvice is the savings recommendation derived from the log. Percent
// and Amount are only set for SavingsPercent advice.
type SavingsAdvice struct {
	Kind    SavingsKind `json:"kind"`
	Percent int         `json:"percent,omitempty"`
	Amount  int64       `json:"amount,omitempty"`
}

// SuggestSavings recommends how much of the recorded income to save.
//
// With no income there is nothing to recommend. Above a 0.9 spend ratio the
// advice is to cut spending first. When a salary-like income exists ("Salario"
// exact, or "novaklar" case-insensitively) the advice is a percentage of
// income tiered by spend ratio, with the computed amount. Otherwise a generic
// 15-20% suggestion is returned without an amount.
func SuggestSavings(t Totals, entries []Entry) SavingsAdvice {
	if t.Incomes <= 0 {
		return SavingsAdvice{Kind: SavingsNoData}
	}

	ratio := float64(t.Expenses) / float64(t.Incomes)
	if ratio > 0.9 {
		return SavingsAdvice{Kind: SavingsReduceSpending}
	}

	if hasSalaryIncome(entries) {
		percent := 20
		if ratio < 0.4 {
			percent = 30
		} else if ratio < 0.6 {
			percent = 25
		}
		return SavingsAdvice{
			Kind:    SavingsPercent,
			Percent: percent,
			Amount:  t.Incomes * int64(percent) / 100,
		}
	}

	return SavingsAdvice{Kind: SavingsGeneric}
}

func hasSalaryIncome(entries []Entry) bool {
	for _, e := range entries {
		inc, ok := e.(Income)
		if !ok {
			continue
		}
		if inc.Source == "Salario" || strings.EqualFold(inc.Source, NovaklarSource) {
			return true
		}
	}
	return false
}
