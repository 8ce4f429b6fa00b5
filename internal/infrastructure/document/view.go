package document

import (
	"html/template"

	"github.com/guidefari/invoicing/internal/domain/entity"
)

// Snapshot datos de entrada para renderizar una factura. Logo es opcional.
type Snapshot struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Profile  *entity.BusinessProfile
	Logo     *Logo
}

// View factura con todos los valores ya formateados para mostrar.
// La comparten la plantilla HTML y el motor de PDF nativo.
type View struct {
	Title         string
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	CurrencyCode  string
	AmountDue     string
	Customer      PartyView
	Company       CompanyView
	Items         []ItemView
	Subtotal      string
	VAT           *VATView // nil cuando no hay IVA
	Total         string
	Notes         string
	Logo          *Logo
	LogoURL       template.URL
}

// PartyView bloque "BILL TO".
type PartyView struct {
	Name          string
	VATNumber     string
	StreetAddress string
	City          string
	PostalCode    string
	Country       string
	Phone         string
	Email         string
}

// CompanyView datos del emisor y pie bancario.
type CompanyView struct {
	PartyView
	AccountHolder string
	BankName      string
	AccountNumber string
	BranchCode    string
	IBAN          string
}

// ItemView fila de la tabla de ítems.
type ItemView struct {
	Description string
	Notes       string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// VATView línea de IVA de los totales.
type VATView struct {
	Label  string // "VAT (15%):"
	Amount string
}

// Rendered documento listo para el motor de PDF.
type Rendered struct {
	HTML string
	View View
}
