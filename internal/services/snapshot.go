package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "banklar/internal/errors"
	"banklar/internal/ledger"
	"banklar/internal/models"
)

// snapshot is the in-memory view of the persisted state that the ledger core
// computes over. Records are loaded in insertion (seq) order so that replay
// ties resolve deterministically.
type snapshot struct {
	profile *models.Profile
	records []models.Transaction
	entries []ledger.Entry
}

func (s *snapshot) openingBalances() ledger.Balances {
	return s.profile.OpeningBalances()
}

func (s *snapshot) balances() ledger.Balances {
	return ledger.Replay(s.openingBalances(), s.entries)
}

// loadSnapshot reads the profile and the full transaction log. It fails with
// ErrProfileNotFound before setup, since no computation is meaningful without
// opening balances.
func loadSnapshot(db *gorm.DB) (*snapshot, error) {
	var profile models.Profile
	if err := db.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.Transaction
	if err := db.Order("seq ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries, err := models.Entries(records)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &snapshot{profile: &profile, records: records, entries: entries}, nil
}
