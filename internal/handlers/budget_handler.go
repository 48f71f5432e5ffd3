package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "banklar/internal/errors"
	"banklar/internal/services"
)

// BudgetHandler handles budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a category ceiling.
type SetBudgetRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// SetBudget creates or updates the ceiling for the category in the path.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetBudget(c.Param("category"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SET_BUDGET", "budget", budget.Category, c.ClientIP(),
		map[string]any{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget removes the ceiling for a category.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}

	if err := h.budgetService.DeleteBudget(category); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BUDGET", "budget", category, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}

// ReplaceBudgetsRequest maps categories to their new ceilings.
type ReplaceBudgetsRequest struct {
	Budgets map[string]int64 `json:"budgets" binding:"required"`
}

// ReplaceBudgets swaps the whole budget set in one call.
func (h *BudgetHandler) ReplaceBudgets(c *gin.Context) {
	var req ReplaceBudgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.ReplaceBudgets(req.Budgets); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REPLACE_BUDGETS", "budget", "", c.ClientIP(),
		map[string]any{"count": len(req.Budgets)})

	c.JSON(http.StatusOK, gin.H{"message": "Budgets replaced"})
}

// GetBudgets returns all budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudgetProgress reports spending against every budgeted category.
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	progress, err := h.budgetService.GetBudgetProgress()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
