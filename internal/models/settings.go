package models

import "time"

// Settings is the single row of user-tunable settings.
type Settings struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	LowThreshold int64     `gorm:"not null" json:"lowThreshold"`
	Currency     string    `gorm:"not null" json:"currency"`
	UpdatedAt    time.Time `json:"-"`
}
