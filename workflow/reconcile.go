package workflow

import (
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/shopspring/decimal"
)

// ReconcileSalesLine repairs the quantity/unit-price/amount triple so that
// sales_amount = quantity * unit_price holds for every emitted row. It is a
// pure per-row transform and a repair, never a rejection: no row is dropped
// for inconsistent measures.
//
// Unit price first: a present non-zero raw price is kept as its absolute
// value; otherwise it is derived as |amount / quantity| rounded to the
// nearest integer, or left nil when quantity is zero or missing. Then the
// amount: a missing, non-positive, or inconsistent raw amount is recomputed
// as quantity * unit price; a raw amount that already satisfies the product
// is kept as-is.
func ReconcileSalesLine(line models.SalesLine) models.SalesLine {
	price := repairedUnitPrice(line)
	line.UnitPrice = price
	line.SalesAmount = repairedSalesAmount(line, price)
	return line
}

func repairedUnitPrice(line models.SalesLine) *int {
	if line.UnitPrice != nil && *line.UnitPrice != 0 {
		p := *line.UnitPrice
		if p < 0 {
			p = -p
		}
		return &p
	}
	if line.Quantity == nil || *line.Quantity == 0 || line.SalesAmount == nil {
		return nil
	}
	derived := decimal.NewFromInt(int64(*line.SalesAmount)).
		Div(decimal.NewFromInt(int64(*line.Quantity))).
		Abs().
		Round(0)
	p := int(derived.IntPart())
	return &p
}

func repairedSalesAmount(line models.SalesLine, price *int) *int {
	if line.Quantity == nil || price == nil {
		// No product to reconcile against; a positive raw amount survives.
		if line.SalesAmount != nil && *line.SalesAmount > 0 {
			return line.SalesAmount
		}
		return nil
	}
	expected := *line.Quantity * *price
	if line.SalesAmount == nil || *line.SalesAmount <= 0 || *line.SalesAmount != expected {
		return &expected
	}
	return line.SalesAmount
}
