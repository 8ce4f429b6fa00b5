package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem línea de factura. Description y UnitPrice quedan congelados al crear
// la factura; cambios posteriores del producto no la afectan.
type InvoiceLineItem struct {
	ID          int64
	InvoiceID   int64
	ProductID   *int64
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // Quantity * UnitPrice
	Notes       *string
	Position    int
}
