package models

import (
	"time"
)

// Product is one version of a slowly changing product dimension. Versions
// sharing a Key form a gap-free timeline: each version's ValidTo is the day
// before the next version's ValidFrom, and the current version has ValidTo
// nil (open-ended).
type Product struct {
	ID         int         `gorm:"primary_key;autoIncrement:false" json:"id"`
	CategoryID string      `gorm:"size:50;index" json:"category_id"`
	Key        string      `gorm:"size:100;index" json:"key"`
	Name       string      `gorm:"size:200" json:"name"`
	Cost       *int        `json:"cost"`
	Line       ProductLine `gorm:"type:enum('Mountain','Road','Other Sales','Touring','Unknown');default:'Unknown'" json:"line"`
	ValidFrom  *time.Time  `json:"valid_from"`
	ValidTo    *time.Time  `json:"valid_to"`
	LoadedAt   time.Time   `gorm:"not null" json:"loaded_at"`
}

func (Product) TableName() string {
	return "silver_products"
}
