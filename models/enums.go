package models

import "fmt"

type MaritalStatus string

const (
	MaritalStatusSingle  MaritalStatus = "Single"
	MaritalStatusMarried MaritalStatus = "Married"
	MaritalStatusUnknown MaritalStatus = "Unknown"
)

type Gender string

const (
	GenderFemale  Gender = "Female"
	GenderMale    Gender = "Male"
	GenderUnknown Gender = "Unknown"
)

type ProductLine string

const (
	ProductLineMountain   ProductLine = "Mountain"
	ProductLineRoad       ProductLine = "Road"
	ProductLineOtherSales ProductLine = "Other Sales"
	ProductLineTouring    ProductLine = "Touring"
	ProductLineUnknown    ProductLine = "Unknown"
)

// EntityKind names one of the six independent bronze-to-silver loads.
type EntityKind string

const (
	EntityKindCustomers         EntityKind = "customers"
	EntityKindProducts          EntityKind = "products"
	EntityKindSalesLines        EntityKind = "sales_lines"
	EntityKindCustomerDemos     EntityKind = "customer_demos"
	EntityKindLocations         EntityKind = "locations"
	EntityKindProductCategories EntityKind = "product_categories"
)

func AllEntityKinds() []EntityKind {
	return []EntityKind{
		EntityKindCustomers,
		EntityKindProducts,
		EntityKindSalesLines,
		EntityKindCustomerDemos,
		EntityKindLocations,
		EntityKindProductCategories,
	}
}

func ParseEntityKind(s string) (EntityKind, error) {
	for _, k := range AllEntityKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}
