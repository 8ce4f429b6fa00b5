package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/infrastructure/postgres"
	"github.com/guidefari/invoicing/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPool requiere TEST_DATABASE_URL apuntando a una base desechable; las tablas se vacían.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE invoice_line_items, invoices, products, customers, business_profile RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestInvoiceFlow(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()

	customers := postgres.NewCustomerRepository(pool)
	customer := &entity.Customer{Name: "Acme Corp", CreatedAt: time.Now()}
	require.NoError(t, customers.Create(ctx, customer))

	products := postgres.NewProductRepository(pool)
	product := &entity.Product{Name: "Web Development", DefaultPrice: decimal.NewFromInt(2500), CreatedAt: time.Now()}
	require.NoError(t, products.Create(ctx, product))

	rate := decimal.NewFromInt(15)
	profiles := postgres.NewBusinessProfileRepository(pool)
	require.NoError(t, profiles.Save(ctx, &entity.BusinessProfile{CompanyName: "Fari Digital", DefaultVATRate: &rate}))

	invoices := postgres.NewInvoiceRepository(pool)
	uc := billing.NewInvoiceUseCase(postgres.NewTxRunner(pool), invoices, customers, products, profiles,
		nil, zerolog.Nop(), billing.InvoiceOptions{})

	req := dto.CreateInvoiceRequest{
		CustomerID: customer.ID,
		DueDate:    "2025-03-31",
		LineItems: []dto.InvoiceItemRequest{
			{ProductID: &product.ID, Quantity: decimal.NewFromInt(11)},
		},
	}
	first, err := uc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "INV-001", first.InvoiceNumber)
	assert.True(t, first.Total.Equal(decimal.NewFromInt(31625)))

	second, err := uc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "INV-002", second.InvoiceNumber)

	got, err := invoices.GetWithLineItems(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, "Web Development", got.LineItems[0].Description)

	dup := &entity.Invoice{InvoiceNumber: "INV-001", CustomerID: customer.ID, CreatedAt: time.Now(), DueDate: time.Now()}
	assert.ErrorIs(t, invoices.CreateWithLineItems(ctx, dup), domain.ErrDuplicate)
}
