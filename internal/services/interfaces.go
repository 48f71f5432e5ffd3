package services

import (
	"banklar/internal/ledger"
	"banklar/internal/models"
	"banklar/internal/pagination"
)

// ProfileServicer defines the contract for profile and settings logic.
type ProfileServicer interface {
	SetupProfile(name string, nu, nequi, nequi2, cash int64) (*models.Profile, error)
	GetProfile() (*models.Profile, error)
	GetSettings() (*models.Settings, error)
	UpdateSettings(lowThreshold int64, currency string) (*models.Settings, error)
}

// TransactionFilter holds the optional filter criteria for listing
// transactions. Zero values bypass their criterion.
type TransactionFilter struct {
	Kind   ledger.Kind
	Bucket ledger.Bucket
	Search string
}

// TransactionServicer defines the contract for appending to and reading the
// transaction log. Every write validates business rules before the log is
// touched; the log itself never rejects an entry.
type TransactionServicer interface {
	RecordIncome(amount int64, account ledger.Bucket, source string, nuAllocated int64, description string) (*models.Transaction, error)
	RecordExpense(amount int64, account ledger.Bucket, category, description string) (*models.Transaction, error)
	RecordTransfer(amount int64, from, to ledger.Bucket) (*models.Transaction, error)
	RecordConversion(amount int64, direction ledger.ConversionDirection, from, to ledger.Bucket) (*models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	DeleteTransaction(id string) error
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// BudgetProgress reports spending against one category's ceiling.
type BudgetProgress struct {
	Category string `json:"category"`
	Budget   int64  `json:"budget"`
	Spent    int64  `json:"spent"`
	Percent  int    `json:"percent"`
}

// BudgetServicer defines the contract for budget management.
type BudgetServicer interface {
	SetBudget(category string, amount int64) (*models.Budget, error)
	DeleteBudget(category string) error
	GetBudgets() ([]models.Budget, error)
	ReplaceBudgets(budgets map[string]int64) error
	GetBudgetProgress() ([]BudgetProgress, error)
}

// SavingsRecommendation pairs the structured savings advice with its
// rendered message.
type SavingsRecommendation struct {
	ledger.SavingsAdvice
	Text string `json:"text"`
}

// Summary aggregates the dashboard read model in one call.
type Summary struct {
	Balances           ledger.Balances       `json:"balances"`
	Totals             ledger.Totals         `json:"totals"`
	ExpensesByCategory map[string]int64      `json:"expenses_by_category"`
	Savings            SavingsRecommendation `json:"savings"`
	NovaklarCount      int                   `json:"novaklar_count"`
}

// Alert is a rendered alert line for display.
type Alert struct {
	Code     string          `json:"code"`
	Severity ledger.Severity `json:"severity"`
	Message  string          `json:"message"`
}

// AnalyticsServicer defines the pure read paths over the current log
// snapshot. Nothing here mutates state; every call re-runs the ledger
// computation over a fresh snapshot.
type AnalyticsServicer interface {
	GetBalances() (ledger.Balances, error)
	GetSummary() (*Summary, error)
	GetAlerts() ([]Alert, error)
	GetCategories() ([]string, error)
}

// PortabilityServicer defines state export and import.
type PortabilityServicer interface {
	ExportState() (*StatePayload, error)
	ExportCSV() ([]byte, error)
	Import(data []byte) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
