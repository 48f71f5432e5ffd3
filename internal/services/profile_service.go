package services

import (
	"errors"

	"gorm.io/gorm"

	"banklar/internal/config"
	apperrors "banklar/internal/errors"
	"banklar/internal/models"
)

// profileService handles profile and settings business logic.
type profileService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB, cfg *config.Config) ProfileServicer {
	return &profileService{db: db, cfg: cfg}
}

// SetupProfile creates the single user profile with its opening balances and
// seeds the default settings. It can only run once; opening balances are
// never edited afterwards.
func (s *profileService) SetupProfile(name string, nu, nequi, nequi2, cash int64) (*models.Profile, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if nu < 0 || nequi < 0 || nequi2 < 0 || cash < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "opening balances must not be negative")
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrProfileExists
	}

	profile := &models.Profile{
		Name:   name,
		Nu:     nu,
		Nequi:  nequi,
		Nequi2: nequi2,
		Cash:   cash,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		settings := &models.Settings{
			LowThreshold: s.cfg.DefaultLowThreshold,
			Currency:     s.cfg.DefaultCurrency,
		}
		if err := tx.Create(settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile returns the user profile.
func (s *profileService) GetProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// GetSettings returns the settings row, creating it with defaults when it
// does not exist yet.
func (s *profileService) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.Settings{
		LowThreshold: s.cfg.DefaultLowThreshold,
		Currency:     s.cfg.DefaultCurrency,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// UpdateSettings updates the low-balance threshold and display currency.
func (s *profileService) UpdateSettings(lowThreshold int64, currency string) (*models.Settings, error) {
	if lowThreshold < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "low threshold must not be negative")
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	settings.LowThreshold = lowThreshold
	if currency != "" {
		settings.Currency = currency
	}
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}
