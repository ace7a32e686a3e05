package models

import (
	"log"

	"github.com/mmdatafocus/dwh_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&BronzeCrmCustInfo{}, &BronzeCrmPrdInfo{}, &BronzeCrmSalesDetails{},
		&BronzeErpCustAz12{}, &BronzeErpLocA101{}, &BronzeErpPxCatG1v2{},
		&Customer{}, &Product{}, &SalesLine{},
		&CustomerDemo{}, &Location{}, &ProductCategory{},
		&RefreshRun{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
