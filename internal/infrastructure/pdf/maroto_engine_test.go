package pdf_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/infrastructure/document"
	"github.com/guidefari/invoicing/internal/infrastructure/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marotoDoc() *document.Rendered {
	return &document.Rendered{View: document.View{
		Title:         "Invoice INV-001",
		InvoiceNumber: "INV-001",
		InvoiceDate:   "March 5, 2025",
		DueDate:       "April 4, 2025",
		CurrencyCode:  "ZAR",
		AmountDue:     "R 31,625.00",
		Customer:      document.PartyView{Name: "Acme", City: "Cape Town", Country: "South Africa"},
		Company: document.CompanyView{
			PartyView: document.PartyView{Name: "Fari Studio", VATNumber: "4999999999"},
			BankName:  "FNB", AccountNumber: "62000000000", BranchCode: "250655",
		},
		Items: []document.ItemView{
			{Description: "Web Development", Notes: "Sprint 1", Quantity: "40", UnitPrice: "R 500.00", Amount: "R 20,000.00"},
			{Description: "Hosting", Quantity: "10", UnitPrice: "R 750.00", Amount: "R 7,500.00"},
		},
		Subtotal: "R 27,500.00",
		VAT:      &document.VATView{Label: "VAT (15%):", Amount: "R 4,125.00"},
		Total:    "R 31,625.00",
	}}
}

func TestMarotoEngine_GeneraPDF(t *testing.T) {
	out, err := pdf.NewMarotoEngine().Render(context.Background(), marotoDoc(), document.DefaultPageOptions())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMarotoEngine_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoEngine().Render(ctx, marotoDoc(), document.DefaultPageOptions())

	assert.True(t, errors.Is(err, domain.ErrRenderEngine))
	assert.True(t, errors.Is(err, context.Canceled))
}
