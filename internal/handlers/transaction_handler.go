package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "banklar/internal/errors"
	"banklar/internal/ledger"
	"banklar/internal/pagination"
	"banklar/internal/services"
)

// TransactionHandler handles transaction log requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateIncomeRequest represents the request payload for recording an income.
type CreateIncomeRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Account     string `json:"account" binding:"required,bucket"`
	Source      string `json:"source" binding:"max=200"`
	NuAllocated int64  `json:"nuAllocated" binding:"min=0"`
	Description string `json:"description" binding:"max=500"`
}

// CreateIncome records an income entry.
func (h *TransactionHandler) CreateIncome(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordIncome(
		req.Amount, ledger.Bucket(req.Account), req.Source, req.NuAllocated, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_INCOME", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"amount": req.Amount, "account": transaction.Account, "source": req.Source})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Account     string `json:"account" binding:"required,bucket"`
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreateExpense records an expense entry.
func (h *TransactionHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordExpense(
		req.Amount, ledger.Bucket(req.Account), req.Category, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_EXPENSE", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"amount": req.Amount, "account": req.Account, "category": transaction.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateTransferRequest represents the request payload for a bucket transfer.
type CreateTransferRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	From   string `json:"from" binding:"required,bucket"`
	To     string `json:"to" binding:"required,bucket"`
}

// CreateTransfer records a transfer between two buckets.
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordTransfer(
		req.Amount, ledger.Bucket(req.From), ledger.Bucket(req.To))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSFER", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"amount": req.Amount, "from": req.From, "to": req.To})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateConversionRequest represents the request payload for a cash conversion.
// The cash-side bucket may be omitted; it is implied by the conversion type.
type CreateConversionRequest struct {
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	ConversionType string `json:"conversionType" binding:"required,conversion_type"`
	From           string `json:"from" binding:"omitempty,bucket"`
	To             string `json:"to" binding:"omitempty,bucket"`
}

// CreateConversion records a conversion between cash and a digital bucket.
func (h *TransactionHandler) CreateConversion(c *gin.Context) {
	var req CreateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.RecordConversion(
		req.Amount, ledger.ConversionDirection(req.ConversionType),
		ledger.Bucket(req.From), ledger.Bucket(req.To))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CONVERSION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"amount": req.Amount, "conversionType": req.ConversionType})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions returns the filtered transaction log, newest first.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a single transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction. Deleting an unknown id succeeds.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("type"); v != "" {
		kind := ledger.Kind(v)
		switch kind {
		case ledger.KindIncome, ledger.KindExpense, ledger.KindTransfer, ledger.KindCashConversion:
			filter.Kind = kind
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidTransactionKind,
				"invalid type, must be income, expense, transfer, or cash-conversion")
		}
	}

	if v := c.Query("bucket"); v != "" {
		bucket := ledger.Bucket(v)
		if !bucket.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"invalid bucket, must be nu, nequi, nequi2, or cash")
		}
		filter.Bucket = bucket
	}

	filter.Search = c.Query("search")

	return filter, nil
}
