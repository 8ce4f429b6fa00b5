// Package invoicing contiene la aritmética monetaria de las facturas (servicio de dominio).
package invoicing

import (
	"github.com/guidefari/invoicing/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo de una factura.
type Totals struct {
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// CalculateTotals suma los LineTotal y aplica el IVA sobre el subtotal.
// Subtotal = Σ LineTotal; IVA = Subtotal * tasa / 100 (0 si no hay tasa); Total = Subtotal + IVA.
// La aritmética es exacta: el redondeo a 2 decimales ocurre sólo al presentar.
func CalculateTotals(items []entity.InvoiceLineItem, vatRate *decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	vat := decimal.Zero
	if vatRate != nil {
		vat = subtotal.Mul(*vatRate).Div(hundred)
	}
	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     subtotal.Add(vat),
	}
}

// LineTotal cantidad por precio unitario.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}
