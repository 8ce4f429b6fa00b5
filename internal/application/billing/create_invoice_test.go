package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	invoices  *memInvoices
	tx        *memTx
	customers *memCustomers
	products  *memProducts
	profile   *memProfile
	metrics   *countingMetrics
	uc        *billing.InvoiceUseCase
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	f := &invoiceFixture{
		invoices:  newMemInvoices(),
		customers: newMemCustomers(sampleCustomer()),
		products: newMemProducts(
			&entity.Product{ID: 1, Name: "Web Development", DefaultPrice: dec("850")},
			&entity.Product{ID: 2, Name: "Hosting", DefaultPrice: dec("250")},
		),
		profile: &memProfile{profile: sampleProfile()},
		metrics: &countingMetrics{},
	}
	f.tx = &memTx{repo: f.invoices}
	f.uc = billing.NewInvoiceUseCase(f.tx, f.invoices, f.customers, f.products, f.profile, f.metrics, zerolog.Nop(),
		billing.InvoiceOptions{Now: func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }})
	return f
}

func simpleRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID: 1,
		DueDate:    "2025-03-31",
		LineItems: []dto.InvoiceItemRequest{
			{Description: ptr("Consulting"), Quantity: dec("1"), UnitPrice: ptr(dec("100"))},
		},
	}
}

func TestCreateInvoice_TotalesConIVAExplicito(t *testing.T) {
	f := newInvoiceFixture(t)
	req := dto.CreateInvoiceRequest{
		CustomerID: 1,
		DueDate:    "2025-03-31",
		VATRate:    ptr(dec("15")),
		LineItems: []dto.InvoiceItemRequest{
			{Description: ptr("Web Development"), Quantity: dec("10"), UnitPrice: ptr(dec("2500"))},
			{Description: ptr("Hosting"), Quantity: dec("1"), UnitPrice: ptr(dec("2500"))},
		},
	}

	out, err := f.uc.CreateInvoice(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "INV-001", out.InvoiceNumber)
	assert.Equal(t, "Acme Corp", out.CustomerName)
	assert.True(t, out.Subtotal.Equal(dec("27500")), out.Subtotal.String())
	assert.True(t, out.VATAmount.Equal(dec("4125")), out.VATAmount.String())
	assert.True(t, out.Total.Equal(dec("31625")), out.Total.String())
	assert.Equal(t, "2025-03-31", out.DueDate)
	assert.Equal(t, "2025-03-01T09:00:00Z", out.CreatedAt)
	require.Len(t, out.LineItems, 2)
	assert.True(t, out.LineItems[0].LineTotal.Equal(dec("25000")))
	assert.Equal(t, 1, f.metrics.created)
}

func TestCreateInvoice_IVAPorDefectoDelPerfil(t *testing.T) {
	f := newInvoiceFixture(t)

	out, err := f.uc.CreateInvoice(context.Background(), simpleRequest())

	require.NoError(t, err)
	require.NotNil(t, out.VATRate)
	assert.True(t, out.VATRate.Equal(dec("15")))
	assert.True(t, out.VATAmount.Equal(dec("15")))
	assert.True(t, out.Total.Equal(dec("115")))
}

func TestCreateInvoice_SinPerfilIVACero(t *testing.T) {
	f := newInvoiceFixture(t)
	f.profile.profile = nil

	out, err := f.uc.CreateInvoice(context.Background(), simpleRequest())

	require.NoError(t, err)
	require.NotNil(t, out.VATRate)
	assert.True(t, out.VATRate.IsZero())
	assert.True(t, out.Total.Equal(dec("100")))
}

func TestCreateInvoice_NumerosSecuenciales(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	want := []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}
	for _, w := range want {
		out, err := f.uc.CreateInvoice(ctx, simpleRequest())
		require.NoError(t, err)
		assert.Equal(t, w, out.InvoiceNumber)
	}
	assert.Equal(t, 5, f.invoices.count())
}

func TestCreateInvoice_ContinuaDesdeElMaximo(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.invoices.CreateWithLineItems(ctx, &entity.Invoice{InvoiceNumber: "INV-041"}))
	require.NoError(t, f.invoices.CreateWithLineItems(ctx, &entity.Invoice{InvoiceNumber: "INV-007"}))

	out, err := f.uc.CreateInvoice(ctx, simpleRequest())

	require.NoError(t, err)
	assert.Equal(t, "INV-042", out.InvoiceNumber)
}

func TestCreateInvoice_ReintentaTrasColision(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoices.dupNext = 1

	out, err := f.uc.CreateInvoice(context.Background(), simpleRequest())

	require.NoError(t, err)
	assert.Equal(t, "INV-001", out.InvoiceNumber)
	assert.Equal(t, 2, f.tx.calls)
	assert.Equal(t, 1, f.metrics.collisions)
}

func TestCreateInvoice_AgotaIntentos(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoices.dupNext = 100

	_, err := f.uc.CreateInvoice(context.Background(), simpleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, billing.DefaultNumberAttempts, f.tx.calls)
	assert.Equal(t, 0, f.invoices.count())
	assert.Equal(t, 0, f.metrics.created)
}

func TestCreateInvoice_ValidacionNoPersiste(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*dto.CreateInvoiceRequest)
		field string
	}{
		{"sin cliente", func(r *dto.CreateInvoiceRequest) { r.CustomerID = 0 }, "customer_id"},
		{"sin vencimiento", func(r *dto.CreateInvoiceRequest) { r.DueDate = "" }, "due_date"},
		{"vencimiento inválido", func(r *dto.CreateInvoiceRequest) { r.DueDate = "31/03/2025" }, "due_date"},
		{"iva negativo", func(r *dto.CreateInvoiceRequest) { r.VATRate = ptr(dec("-1")) }, "vat_rate"},
		{"sin líneas", func(r *dto.CreateInvoiceRequest) { r.LineItems = nil }, "line_items"},
		{"cantidad cero", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].Quantity = dec("0") }, "line_items[0].quantity"},
		{"descripción en blanco", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].Description = ptr("  ") }, "line_items[0].description"},
		{"sin precio", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].UnitPrice = nil }, "line_items[0].unit_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newInvoiceFixture(t)
			req := simpleRequest()
			tc.mod(&req)

			_, err := f.uc.CreateInvoice(context.Background(), req)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	f := newInvoiceFixture(t)
	req := simpleRequest()
	req.CustomerID = 99

	_, err := f.uc.CreateInvoice(context.Background(), req)

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "customer", nf.Entity)
	assert.Equal(t, 0, f.tx.calls)
}

func TestGetInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	created, err := f.uc.CreateInvoice(ctx, simpleRequest())
	require.NoError(t, err)

	got, err := f.uc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, "Acme Corp", got.CustomerName)
	require.Len(t, got.LineItems, 1)

	_, err = f.uc.GetInvoice(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListInvoices(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	for range 3 {
		_, err := f.uc.CreateInvoice(ctx, simpleRequest())
		require.NoError(t, err)
	}

	out, err := f.uc.ListInvoices(ctx, dto.PageRequest{Limit: 2})

	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "INV-003", out.Items[0].InvoiceNumber)
	assert.Equal(t, 2, out.Page.Limit)
}

func TestGetInvoice_ErrorAlLeerCliente(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	created, err := f.uc.CreateInvoice(ctx, simpleRequest())
	require.NoError(t, err)
	cause := &domain.PersistenceError{Op: "obtener cliente", Err: errors.New("conexión perdida")}
	f.customers.getErr = cause

	got, err := f.uc.GetInvoice(ctx, created.ID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
}
