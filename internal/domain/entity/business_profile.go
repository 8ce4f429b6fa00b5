package entity

import "github.com/shopspring/decimal"

// BusinessProfile datos del emisor (registro único). Alimenta el encabezado y el pie
// bancario de la factura y la tasa de IVA por defecto.
type BusinessProfile struct {
	CompanyName       string
	StreetAddress     string
	City              string
	PostalCode        string
	Country           string
	VATNumber         string
	Email             string
	Phone             string
	LogoPath          *string
	AccountHolderName string
	BankName          string
	AccountNumber     string
	BranchCode        string
	IBAN              *string
	DefaultVATRate    *decimal.Decimal
}
