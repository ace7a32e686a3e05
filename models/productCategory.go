package models

import (
	"time"
)

// ProductCategory is a straight pass-through of the ERP category reference,
// trimmed but otherwise untouched.
type ProductCategory struct {
	ID              int       `gorm:"primary_key" json:"id"`
	CategoryID      string    `gorm:"size:50;index" json:"category_id"`
	Category        string    `gorm:"size:100" json:"category"`
	Subcategory     string    `gorm:"size:100" json:"subcategory"`
	MaintenanceFlag string    `gorm:"size:50" json:"maintenance_flag"`
	LoadedAt        time.Time `gorm:"not null" json:"loaded_at"`
}

func (ProductCategory) TableName() string {
	return "silver_product_categories"
}
