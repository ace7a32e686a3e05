package models

import (
	"time"
)

// Customer is the cleaned, deduplicated customer record: exactly one row per
// source customer id, carrying the fields of its latest raw version.
type Customer struct {
	ID            int           `gorm:"primary_key;autoIncrement:false" json:"id"`
	Key           string        `gorm:"size:50" json:"key"`
	FirstName     string        `gorm:"size:100" json:"first_name"`
	LastName      string        `gorm:"size:100" json:"last_name"`
	MaritalStatus MaritalStatus `gorm:"type:enum('Single','Married','Unknown');default:'Unknown'" json:"marital_status"`
	Gender        Gender        `gorm:"type:enum('Female','Male','Unknown');default:'Unknown'" json:"gender"`
	CreatedOn     *time.Time    `json:"created_on"`
	LoadedAt      time.Time     `gorm:"not null" json:"loaded_at"`
}

func (Customer) TableName() string {
	return "silver_customers"
}
