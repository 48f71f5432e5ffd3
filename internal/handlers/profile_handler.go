package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "banklar/internal/errors"
	"banklar/internal/services"
)

// ProfileHandler handles profile and settings requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer, auditService services.AuditServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, auditService: auditService}
}

// SetupProfileRequest represents the request payload for the one-time profile setup.
// Opening balances are in minor currency units and immutable once set.
type SetupProfileRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Nu     int64  `json:"nu" binding:"min=0"`
	Nequi  int64  `json:"nequi" binding:"min=0"`
	Nequi2 int64  `json:"nequi2" binding:"min=0"`
	Cash   int64  `json:"cash" binding:"min=0"`
}

// SetupProfile handles the one-time profile creation.
func (h *ProfileHandler) SetupProfile(c *gin.Context) {
	var req SetupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.SetupProfile(req.Name, req.Nu, req.Nequi, req.Nequi2, req.Cash)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SETUP_PROFILE", "profile", profile.Name, c.ClientIP(),
		map[string]any{"nu": req.Nu, "nequi": req.Nequi, "nequi2": req.Nequi2, "cash": req.Cash})

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// GetProfile returns the user profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetSettings returns the current settings.
func (h *ProfileHandler) GetSettings(c *gin.Context) {
	settings, err := h.profileService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettingsRequest represents the request payload for updating settings.
type UpdateSettingsRequest struct {
	LowThreshold int64  `json:"lowThreshold" binding:"min=0"`
	Currency     string `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateSettings updates the low-balance threshold and display currency.
func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.profileService.UpdateSettings(req.LowThreshold, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SETTINGS", "settings", "", c.ClientIP(),
		map[string]any{"lowThreshold": req.LowThreshold, "currency": req.Currency})

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
