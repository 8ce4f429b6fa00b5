// Package document construye la representación imprimible de una factura:
// una vista con valores formateados y un HTML autocontenido (estilos en línea, logo como data URI).
package document

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/guidefari/invoicing/internal/domain/entity"
)

//go:embed templates/invoice.html.tmpl
var templateFS embed.FS

// Renderer genera el HTML de la factura. Es seguro para uso concurrente.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer compila la plantilla embebida.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/invoice.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("compilar plantilla de factura: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render es una función pura de la foto: mismos datos, mismo HTML.
func (r *Renderer) Render(s Snapshot) (*Rendered, error) {
	if s.Invoice == nil || s.Customer == nil || s.Profile == nil {
		return nil, errors.New("renderizar factura: faltan factura, cliente o perfil")
	}
	view := BuildView(s)
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("renderizar factura %s: %w", s.Invoice.InvoiceNumber, err)
	}
	return &Rendered{HTML: buf.String(), View: view}, nil
}

// BuildView formatea moneda, fechas y cantidades una sola vez.
func BuildView(s Snapshot) View {
	inv := s.Invoice
	v := View{
		Title:         "Invoice " + inv.InvoiceNumber,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   FormatDate(inv.CreatedAt),
		DueDate:       FormatDate(inv.DueDate),
		CurrencyCode:  CurrencyCode,
		AmountDue:     FormatCurrency(inv.Total),
		Customer:      customerView(s.Customer),
		Company:       companyView(s.Profile),
		Items:         make([]ItemView, 0, len(inv.LineItems)),
		Subtotal:      FormatCurrency(inv.Subtotal),
		Total:         FormatCurrency(inv.Total),
		Notes:         deref(inv.Notes),
	}
	for _, li := range inv.LineItems {
		v.Items = append(v.Items, ItemView{
			Description: li.Description,
			Notes:       deref(li.Notes),
			Quantity:    FormatQuantity(li.Quantity),
			UnitPrice:   FormatCurrency(li.UnitPrice),
			Amount:      FormatCurrency(li.LineTotal),
		})
	}
	if rate := inv.EffectiveVATRate(); !rate.IsZero() && !inv.VATAmount.IsZero() {
		v.VAT = &VATView{
			Label:  fmt.Sprintf("VAT (%s%%):", rate.String()),
			Amount: FormatCurrency(inv.VATAmount),
		}
	}
	if s.Logo != nil && len(s.Logo.Data) > 0 {
		v.Logo = s.Logo
		// El data URI se genera aquí a partir de bytes propios, no de entrada del usuario.
		v.LogoURL = template.URL(s.Logo.DataURL())
	}
	return v
}

func customerView(c *entity.Customer) PartyView {
	return PartyView{
		Name:          c.Name,
		VATNumber:     deref(c.VATNumber),
		StreetAddress: c.StreetAddress,
		City:          c.City,
		PostalCode:    c.PostalCode,
		Country:       c.Country,
		Phone:         c.Phone,
		Email:         c.Email,
	}
}

func companyView(p *entity.BusinessProfile) CompanyView {
	return CompanyView{
		PartyView: PartyView{
			Name:          p.CompanyName,
			VATNumber:     p.VATNumber,
			StreetAddress: p.StreetAddress,
			City:          p.City,
			PostalCode:    p.PostalCode,
			Country:       p.Country,
			Phone:         p.Phone,
			Email:         p.Email,
		},
		AccountHolder: p.AccountHolderName,
		BankName:      p.BankName,
		AccountNumber: p.AccountNumber,
		BranchCode:    p.BranchCode,
		IBAN:          deref(p.IBAN),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
