package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"banklar/internal/config"
	"banklar/internal/handlers"
	"banklar/internal/logger"
	"banklar/internal/middleware"
	"banklar/internal/models"
	"banklar/internal/services"
	"banklar/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Profile{},
		&models.Transaction{},
		&models.Budget{},
		&models.Settings{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	cfg := &config.Config{
		CashLowThreshold:    10000,
		DefaultLowThreshold: 20000,
		DefaultCurrency:     "COP",
	}

	// Services
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db, cfg)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	analyticsService := services.NewAnalyticsService(db, profileService, budgetService, cfg)
	portabilityService := services.NewPortabilityService(db, profileService, budgetService)

	// Handlers
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	portabilityHandler := handlers.NewPortabilityHandler(portabilityService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.POST("/profile", profileHandler.SetupProfile)
	v1.GET("/profile", profileHandler.GetProfile)
	v1.GET("/settings", profileHandler.GetSettings)
	v1.PUT("/settings", profileHandler.UpdateSettings)

	transactions := v1.Group("/transactions")
	transactions.POST("/income", transactionHandler.CreateIncome)
	transactions.POST("/expense", transactionHandler.CreateExpense)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.POST("/conversion", transactionHandler.CreateConversion)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("", budgetHandler.ReplaceBudgets)
	budgets.GET("/progress", budgetHandler.GetBudgetProgress)
	budgets.PUT("/:category", budgetHandler.SetBudget)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)

	v1.GET("/balances", analyticsHandler.GetBalances)
	v1.GET("/summary", analyticsHandler.GetSummary)
	v1.GET("/alerts", analyticsHandler.GetAlerts)
	v1.GET("/categories", analyticsHandler.GetCategories)

	v1.GET("/export/json", portabilityHandler.ExportState)
	v1.GET("/export/csv", portabilityHandler.ExportCSV)
	v1.POST("/import", portabilityHandler.Import)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// setupProfile creates the profile with the standard opening balances
// nu=100000, nequi=50000, nequi2=0, cash=20000.
func (app *testApp) setupProfile(t *testing.T) {
	t.Helper()
	rec := app.request("POST", "/api/v1/profile",
		`{"name":"Laura","nu":100000,"nequi":50000,"nequi2":0,"cash":20000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("profile setup failed: %d %s", rec.Code, rec.Body.String())
	}
}

// balances fetches the current balances as a map of float64 values.
func (app *testApp) balances(t *testing.T) map[string]float64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/balances", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("balances failed: %d %s", rec.Code, rec.Body.String())
	}
	raw := parseJSON(t, rec)["balances"].(map[string]interface{})
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		out[k] = v.(float64)
	}
	return out
}
