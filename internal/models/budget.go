package models

import "time"

// Budget maps a spending category to a target ceiling in minor currency
// units. Budgets are independent of categories: a budget may exist for a
// category with no transactions yet, and vice versa.
type Budget struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Category  string    `gorm:"uniqueIndex;not null" json:"category"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
