package sqlite_test

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/infrastructure/sqlite"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "data", "invoices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createCustomer(t *testing.T, store *sqlite.Store, name string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{Name: name, City: "Cape Town", CreatedAt: time.Now()}
	require.NoError(t, store.Customers().Create(context.Background(), c))
	return c
}

func TestCustomers(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	vat := "4123456789"
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	zulu := &entity.Customer{Name: "Zulu Trading", VATNumber: &vat, Email: "a@zulu.co.za", CreatedAt: created}
	require.NoError(t, store.Customers().Create(ctx, zulu))
	assert.NotZero(t, zulu.ID)
	createCustomer(t, store, "Acme Corp")

	got, err := store.Customers().GetByID(ctx, zulu.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Zulu Trading", got.Name)
	assert.Equal(t, vat, *got.VATNumber)
	assert.True(t, got.CreatedAt.Equal(created))

	missing, err := store.Customers().GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := store.Customers().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme Corp", list[0].Name)
	assert.Nil(t, list[0].VATNumber)
}

func TestProducts(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Web Development", DefaultPrice: dec("850.50"), CreatedAt: time.Now()}
	require.NoError(t, store.Products().Create(ctx, p))

	got, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.DefaultPrice.Equal(dec("850.5")))
	assert.Nil(t, got.Description)

	list, err := store.Products().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBusinessProfile_Upsert(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	repo := store.BusinessProfile()

	none, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	rate := dec("15")
	require.NoError(t, repo.Save(ctx, &entity.BusinessProfile{CompanyName: "Fari Digital", DefaultVATRate: &rate}))
	iban := "ZA00 0000"
	require.NoError(t, repo.Save(ctx, &entity.BusinessProfile{CompanyName: "Fari Digital (Pty) Ltd", IBAN: &iban}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Fari Digital (Pty) Ltd", got.CompanyName)
	assert.Equal(t, iban, *got.IBAN)
	assert.Nil(t, got.DefaultVATRate)
	assert.Nil(t, got.LogoPath)
}

func TestInvoices_CreateGetList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	customer := createCustomer(t, store, "Acme Corp")
	product := &entity.Product{Name: "Hosting", DefaultPrice: dec("250"), CreatedAt: time.Now()}
	require.NoError(t, store.Products().Create(ctx, product))

	note := "pago a 30 días"
	rate := dec("15")
	inv := &entity.Invoice{
		InvoiceNumber: "INV-001",
		CustomerID:    customer.ID,
		CreatedAt:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		VATRate:       &rate,
		Notes:         &note,
		Subtotal:      dec("350"),
		VATAmount:     dec("52.5"),
		Total:         dec("402.5"),
		LineItems: []entity.InvoiceLineItem{
			{ProductID: &product.ID, Description: "Hosting", Quantity: dec("1"), UnitPrice: dec("250"), LineTotal: dec("250"), Position: 0},
			{Description: "Setup", Quantity: dec("0.5"), UnitPrice: dec("200"), LineTotal: dec("100"), Position: 1},
		},
	}
	require.NoError(t, store.Invoices().CreateWithLineItems(ctx, inv))
	assert.NotZero(t, inv.ID)
	assert.NotZero(t, inv.LineItems[1].ID)

	got, err := store.Invoices().GetWithLineItems(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "INV-001", got.InvoiceNumber)
	assert.Equal(t, "2025-03-31", got.DueDate.Format("2006-01-02"))
	assert.True(t, got.VATRate.Equal(rate))
	assert.True(t, got.Total.Equal(dec("402.50")))
	assert.Equal(t, note, *got.Notes)
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, "Hosting", got.LineItems[0].Description)
	assert.Equal(t, product.ID, *got.LineItems[0].ProductID)
	assert.Nil(t, got.LineItems[1].ProductID)
	assert.True(t, got.LineItems[1].Quantity.Equal(dec("0.5")))

	missing, err := store.Invoices().GetWithLineItems(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := store.Invoices().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].LineItems)
}

func TestInvoices_NumeroDuplicado(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	customer := createCustomer(t, store, "Acme Corp")

	newInvoice := func() *entity.Invoice {
		return &entity.Invoice{InvoiceNumber: "INV-001", CustomerID: customer.ID, CreatedAt: time.Now(), DueDate: time.Now()}
	}
	require.NoError(t, store.Invoices().CreateWithLineItems(ctx, newInvoice()))

	err := store.Invoices().CreateWithLineItems(ctx, newInvoice())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvoices_ListInvoiceNumbers(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	customer := createCustomer(t, store, "Acme Corp")
	for _, n := range []string{"INV-001", "INV-010", "DRAFT-1"} {
		inv := &entity.Invoice{InvoiceNumber: n, CustomerID: customer.ID, CreatedAt: time.Now(), DueDate: time.Now()}
		require.NoError(t, store.Invoices().CreateWithLineItems(ctx, inv))
	}

	numbers, err := store.Invoices().ListInvoiceNumbers(ctx, "INV-")

	require.NoError(t, err)
	sort.Strings(numbers)
	assert.Equal(t, []string{"INV-001", "INV-010"}, numbers)
}

func newInvoiceUseCase(store *sqlite.Store) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(store.TxRunner(), store.Invoices(), store.Customers(), store.Products(),
		store.BusinessProfile(), nil, zerolog.Nop(), billing.InvoiceOptions{})
}

func invoiceRequest(customerID int64) dto.CreateInvoiceRequest {
	desc := "Consulting"
	price := dec("100")
	return dto.CreateInvoiceRequest{
		CustomerID: customerID,
		DueDate:    "2025-03-31",
		LineItems:  []dto.InvoiceItemRequest{{Description: &desc, Quantity: dec("2"), UnitPrice: &price}},
	}
}

func TestInvoiceUseCase_NumeracionSecuencial(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	customer := createCustomer(t, store, "Acme Corp")
	uc := newInvoiceUseCase(store)

	for _, want := range []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"} {
		out, err := uc.CreateInvoice(ctx, invoiceRequest(customer.ID))
		require.NoError(t, err)
		assert.Equal(t, want, out.InvoiceNumber)
	}

	got, err := uc.GetInvoice(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "INV-005", got.InvoiceNumber)
	assert.True(t, got.Subtotal.Equal(dec("200")))
	require.Len(t, got.LineItems, 1)
}

func TestInvoiceUseCase_ConcurrenteNumerosUnicos(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	customer := createCustomer(t, store, "Acme Corp")
	uc := newInvoiceUseCase(store)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.CreateInvoice(ctx, invoiceRequest(customer.ID))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			numbers = append(numbers, out.InvoiceNumber)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Strings(numbers)
	assert.Equal(t, []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005", "INV-006", "INV-007", "INV-008"}, numbers)
}
