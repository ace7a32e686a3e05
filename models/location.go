package models

import (
	"time"
)

// Location maps a customer key to a canonical country name. Country is never
// blank: blank or missing source codes become "Unknown", known codes are
// expanded, and unmapped non-blank codes pass through trimmed.
type Location struct {
	ID         int       `gorm:"primary_key" json:"id"`
	CustomerID string    `gorm:"size:50;index" json:"customer_id"`
	Country    string    `gorm:"size:100;not null" json:"country"`
	LoadedAt   time.Time `gorm:"not null" json:"loaded_at"`
}

func (Location) TableName() string {
	return "silver_locations"
}
