package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "banklar/internal/errors"
	"banklar/internal/services"
)

// maxImportSize caps import payloads at 10 MiB.
const maxImportSize = 10 << 20

// PortabilityHandler handles state export and import requests.
type PortabilityHandler struct {
	portabilityService services.PortabilityServicer
	auditService       services.AuditServicer
}

// NewPortabilityHandler creates a new PortabilityHandler.
func NewPortabilityHandler(portabilityService services.PortabilityServicer, auditService services.AuditServicer) *PortabilityHandler {
	return &PortabilityHandler{portabilityService: portabilityService, auditService: auditService}
}

// ExportState returns the full application state as a JSON download.
func (h *PortabilityHandler) ExportState(c *gin.Context) {
	state, err := h.portabilityService.ExportState()
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "banklar-" + time.Now().Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, state)
}

// ExportCSV returns the transaction log as a CSV download.
func (h *PortabilityHandler) ExportCSV(c *gin.Context) {
	data, err := h.portabilityService.ExportCSV()
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "banklar-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Import replaces the full application state with the uploaded payload.
func (h *PortabilityHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	if err := h.portabilityService.Import(data); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("IMPORT_STATE", "state", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "State imported"})
}
