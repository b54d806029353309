package domain

import "github.com/shopspring/decimal"

// TaxRate is the fixed VAT applied to every invoice subtotal. Not configurable.
var TaxRate = decimal.New(5, -2) // 0.05

// Residential and commercial properties are billed per square meter at fixed
// unit rates when an invoice is auto-populated from a property.
var (
	RateResidential = decimal.NewFromInt(1)
	RateCommercial  = decimal.NewFromInt(2)
)

// UnitRate returns the per-square-meter billing rate for the property use.
func UnitRate(use PropertyUse) decimal.Decimal {
	if use == UseCommercial {
		return RateCommercial
	}
	return RateResidential
}

// Recalculate rederives every money field that depends on the service lines:
// each line total, the subtotal, the 5% tax, and the grand total. It must be
// called after any add, edit, or removal of a service line.
func (inv Invoice) Recalculate() Invoice {
	lines := make([]ServiceLine, 0, len(inv.Services))
	subtotal := decimal.Zero
	for _, line := range inv.Services {
		line.Total = line.Quantity.Mul(line.UnitPrice)
		subtotal = subtotal.Add(line.Total)
		lines = append(lines, line)
	}
	inv.Services = lines
	inv.Subtotal = subtotal
	inv.Tax = subtotal.Mul(TaxRate)
	inv.TotalAmount = subtotal.Add(inv.Tax)
	return inv
}

// BalanceDue is the outstanding amount: totalAmount minus amountPaid.
func (inv Invoice) BalanceDue() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.AmountPaid)
}

// DeriveStatus maps the paid amount onto a payment status. Draft invoices are
// left alone; drafts only leave Draft by an explicit user action.
func (inv Invoice) DeriveStatus() InvoiceStatus {
	if inv.Status == InvoiceDraft {
		return InvoiceDraft
	}
	switch {
	case inv.TotalAmount.IsPositive() && inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount):
		return InvoicePaid
	case inv.AmountPaid.IsPositive():
		return InvoicePartial
	default:
		return InvoiceUnpaid
	}
}
