package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/xuri/excelize/v2"
)

// Writes an .xlsx workbook with the current row count of every bronze and
// silver table, for eyeballing a refresh (bronze vs silver deltas are the
// dropped-identity rows plus dedup collapse).
func main() {
	outPath := flag.String("out", "rowcounts.xlsx", "Output .xlsx path")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	tables := []string{
		models.BronzeCrmCustInfo{}.TableName(),
		models.BronzeCrmPrdInfo{}.TableName(),
		models.BronzeCrmSalesDetails{}.TableName(),
		models.BronzeErpCustAz12{}.TableName(),
		models.BronzeErpLocA101{}.TableName(),
		models.BronzeErpPxCatG1v2{}.TableName(),
		models.Customer{}.TableName(),
		models.Product{}.TableName(),
		models.SalesLine{}.TableName(),
		models.CustomerDemo{}.TableName(),
		models.Location{}.TableName(),
		models.ProductCategory{}.TableName(),
	}

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Table")
	f.SetCellValue("Sheet1", "B1", "Rows")

	for i, table := range tables {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			fmt.Fprintf(os.Stderr, "count %s: %v\n", table, err)
			os.Exit(1)
		}
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(i+2), table)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(i+2), count)
	}

	if err := f.SaveAs(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "save report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d tables)\n", *outPath, len(tables))
}
