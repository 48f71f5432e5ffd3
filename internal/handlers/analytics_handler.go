package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"banklar/internal/services"
)

// AnalyticsHandler handles the read-only dashboard endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetBalances returns the current replayed balances.
func (h *AnalyticsHandler) GetBalances(c *gin.Context) {
	balances, err := h.analyticsService.GetBalances()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// GetSummary returns the full dashboard read model.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetAlerts returns the rendered alert list.
func (h *AnalyticsHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.analyticsService.GetAlerts()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetCategories returns the category universe for expense entry and budgets.
func (h *AnalyticsHandler) GetCategories(c *gin.Context) {
	categories, err := h.analyticsService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
