package models

import (
	"time"

	"banklar/internal/ledger"
)

// Profile is the single user profile holding the opening balance of each
// bucket. It is created once at setup; opening balances are never edited
// afterwards, only implicitly moved by transactions.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Nu        int64     `gorm:"not null;default:0" json:"nu"`
	Nequi     int64     `gorm:"not null;default:0" json:"nequi"`
	Nequi2    int64     `gorm:"not null;default:0" json:"nequi2"`
	Cash      int64     `gorm:"not null;default:0" json:"cash"`
	CreatedAt time.Time `json:"createdAt"`
}

// OpeningBalances returns the profile's opening balances as a ledger value.
func (p *Profile) OpeningBalances() ledger.Balances {
	return ledger.Balances{
		Nu:     p.Nu,
		Nequi:  p.Nequi,
		Nequi2: p.Nequi2,
		Cash:   p.Cash,
		Total:  p.Nu + p.Nequi + p.Nequi2 + p.Cash,
	}
}
