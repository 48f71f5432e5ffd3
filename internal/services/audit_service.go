package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"banklar/internal/logger"
	"banklar/internal/models"
)

// auditService records who-did-what rows for state-changing operations.
// Failures are logged and swallowed: an audit write must never fail the
// operation it describes.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log writes one audit row. Changes are stored as JSON.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	var payload string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("failed to marshal audit changes", "action", action, "error", err)
		} else {
			payload = string(data)
		}
	}

	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      payload,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Warnw("failed to write audit log", "action", action, "error", err)
	}
}
