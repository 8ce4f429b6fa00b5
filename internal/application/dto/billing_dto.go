package dto

import "github.com/shopspring/decimal"

// DateLayout formato de fechas de calendario en la API (vencimiento).
const DateLayout = "2006-01-02"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name          string  `json:"name"`
	VATNumber     *string `json:"vat_number,omitempty"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	VATNumber     *string `json:"vat_number,omitempty"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	CreatedAt     string  `json:"created_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// VATRate es opcional; si falta se usa la tasa por defecto del perfil del emisor.
type CreateInvoiceRequest struct {
	CustomerID int64                `json:"customer_id"`
	DueDate    string               `json:"due_date"` // YYYY-MM-DD
	VATRate    *decimal.Decimal     `json:"vat_rate,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	LineItems  []InvoiceItemRequest `json:"line_items"`
}

// InvoiceItemRequest línea solicitada. Con ProductID, Description y UnitPrice
// se completan desde el catálogo cuando faltan; sin él ambos son obligatorios.
type InvoiceItemRequest struct {
	ProductID   *int64           `json:"product_id,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// InvoiceResponse factura con líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            int64                 `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerID    int64                 `json:"customer_id"`
	CustomerName  string                `json:"customer_name,omitempty"`
	CreatedAt     string                `json:"created_at"`
	DueDate       string                `json:"due_date"`
	VATRate       *decimal.Decimal      `json:"vat_rate,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	VATAmount     decimal.Decimal       `json:"vat_amount"`
	Total         decimal.Decimal       `json:"total"`
	LineItems     []InvoiceLineResponse `json:"line_items"`
}

// InvoiceLineResponse línea de factura en la respuesta.
type InvoiceLineResponse struct {
	ID          int64           `json:"id"`
	ProductID   *int64          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Notes       *string         `json:"notes,omitempty"`
}

// InvoiceSummaryResponse fila del listado de facturas (sin líneas).
type InvoiceSummaryResponse struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    int64           `json:"customer_id"`
	CreatedAt     string          `json:"created_at"`
	DueDate       string          `json:"due_date"`
	Total         decimal.Decimal `json:"total"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// BusinessProfileRequest body para PUT /api/business-profile.
type BusinessProfileRequest struct {
	CompanyName       string           `json:"company_name"`
	StreetAddress     string           `json:"street_address"`
	City              string           `json:"city"`
	PostalCode        string           `json:"postal_code"`
	Country           string           `json:"country"`
	VATNumber         string           `json:"vat_number"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	LogoPath          *string          `json:"logo_path,omitempty"`
	AccountHolderName string           `json:"account_holder_name"`
	BankName          string           `json:"bank_name"`
	AccountNumber     string           `json:"account_number"`
	BranchCode        string           `json:"branch_code"`
	IBAN              *string          `json:"iban,omitempty"`
	DefaultVATRate    *decimal.Decimal `json:"default_vat_rate,omitempty"`
}

// BusinessProfileResponse perfil del emisor; mismos campos que la solicitud.
type BusinessProfileResponse = BusinessProfileRequest
