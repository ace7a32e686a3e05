package models

import (
	"time"
)

// SalesLine is a cleaned transactional sales row. After the measure repair
// step, SalesAmount equals Quantity times UnitPrice whenever all three are
// present; a nil UnitPrice means the price was underivable (quantity zero
// and no usable amount), in which case SalesAmount is nil too.
type SalesLine struct {
	ID          int        `gorm:"primary_key" json:"id"`
	OrderNum    string     `gorm:"size:50;index" json:"order_num"`
	ProductKey  string     `gorm:"size:100;index" json:"product_key"`
	CustomerID  *int       `gorm:"index" json:"customer_id"`
	OrderDate   *time.Time `json:"order_date"`
	ShipDate    *time.Time `json:"ship_date"`
	DueDate     *time.Time `json:"due_date"`
	SalesAmount *int       `json:"sales_amount"`
	Quantity    *int       `json:"quantity"`
	UnitPrice   *int       `json:"unit_price"`
	LoadedAt    time.Time  `gorm:"not null" json:"loaded_at"`
}

func (SalesLine) TableName() string {
	return "silver_sales_lines"
}
