package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura con sus totales ya calculados.
// InvoiceNumber es único (formato INV-NNN) y se asigna al persistir.
type Invoice struct {
	ID            int64
	InvoiceNumber string
	CustomerID    int64
	CreatedAt     time.Time
	DueDate       time.Time
	VATRate       *decimal.Decimal // porcentaje, ej. 15 = 15 %
	Notes         *string
	Subtotal      decimal.Decimal
	VATAmount     decimal.Decimal
	Total         decimal.Decimal
	LineItems     []InvoiceLineItem
}

// EffectiveVATRate devuelve la tasa aplicada o cero si la factura no tiene IVA.
func (i *Invoice) EffectiveVATRate() decimal.Decimal {
	if i.VATRate == nil {
		return decimal.Zero
	}
	return *i.VATRate
}
