package service

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/pos/internal/config"
)

// PricedItem is one submitted line.
type PricedItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// PricedCharge is one applied charge with its taxability resolved from the catalog.
type PricedCharge struct {
	Amount  decimal.Decimal
	Taxable bool
}

type Totals struct {
	Subtotal          decimal.Decimal
	TaxableCharges    decimal.Decimal
	NonTaxableCharges decimal.Decimal
	Discount          decimal.Decimal
	TaxableAmount     decimal.Decimal
	CGST              decimal.Decimal
	SGST              decimal.Decimal
	GrandTotal        decimal.Decimal
}

// ComputeTotals derives every monetary total of an order. Lines are summed
// unrounded; rounding to two places happens once on each tax and the grand total.
func ComputeTotals(items []PricedItem, charges []PricedCharge, rates config.PricingConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	taxableCharges := decimal.Zero
	nonTaxableCharges := decimal.Zero
	for _, charge := range charges {
		if charge.Taxable {
			taxableCharges = taxableCharges.Add(charge.Amount)
		} else {
			nonTaxableCharges = nonTaxableCharges.Add(charge.Amount)
		}
	}

	taxable := subtotal.Add(taxableCharges)
	cgst := taxable.Mul(decimal.NewFromFloat(rates.CGSTRate)).Round(2)
	sgst := taxable.Mul(decimal.NewFromFloat(rates.SGSTRate)).Round(2)

	return Totals{
		Subtotal:          subtotal,
		TaxableCharges:    taxableCharges,
		NonTaxableCharges: nonTaxableCharges,
		Discount:          decimal.Zero,
		TaxableAmount:     taxable,
		CGST:              cgst,
		SGST:              sgst,
		GrandTotal:        taxable.Add(cgst).Add(sgst).Add(nonTaxableCharges).Round(2),
	}
}

// LineTotal is the display total of a single line.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
