package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"banklar/internal/config"
	"banklar/internal/database"
	"banklar/internal/handlers"
	"banklar/internal/logger"
	"banklar/internal/middleware"
	"banklar/internal/services"
	"banklar/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db, appConfig)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	analyticsService := services.NewAnalyticsService(db, profileService, budgetService, appConfig)
	portabilityService := services.NewPortabilityService(db, profileService, budgetService)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	portabilityHandler := handlers.NewPortabilityHandler(portabilityService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Profile and settings
	v1.POST("/profile", profileHandler.SetupProfile)
	v1.GET("/profile", profileHandler.GetProfile)
	v1.GET("/settings", profileHandler.GetSettings)
	v1.PUT("/settings", profileHandler.UpdateSettings)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("/income", transactionHandler.CreateIncome)
	transactions.POST("/expense", transactionHandler.CreateExpense)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.POST("/conversion", transactionHandler.CreateConversion)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("", budgetHandler.ReplaceBudgets)
	budgets.GET("/progress", budgetHandler.GetBudgetProgress)
	budgets.PUT("/:category", budgetHandler.SetBudget)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)

	// Analytics routes
	v1.GET("/balances", analyticsHandler.GetBalances)
	v1.GET("/summary", analyticsHandler.GetSummary)
	v1.GET("/alerts", analyticsHandler.GetAlerts)
	v1.GET("/categories", analyticsHandler.GetCategories)

	// Portability routes
	v1.GET("/export/json", portabilityHandler.ExportState)
	v1.GET("/export/csv", portabilityHandler.ExportCSV)
	v1.POST("/import", portabilityHandler.Import)

	log.Infof("Starting Banklar backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
