package models

import (
	"time"
)

// CustomerDemo carries ERP demographic attributes keyed by the customer key.
// Birth dates in the future are nulled during the load.
type CustomerDemo struct {
	ID         int        `gorm:"primary_key" json:"id"`
	CustomerID string     `gorm:"size:50;index" json:"customer_id"`
	BirthDate  *time.Time `json:"birth_date"`
	Gender     Gender     `gorm:"type:enum('Female','Male','Unknown');default:'Unknown'" json:"gender"`
	LoadedAt   time.Time  `gorm:"not null" json:"loaded_at"`
}

func (CustomerDemo) TableName() string {
	return "silver_customer_demos"
}
