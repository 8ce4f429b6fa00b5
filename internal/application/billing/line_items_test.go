package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() *memProducts {
	return newMemProducts(&entity.Product{ID: 1, Name: "Web Development", DefaultPrice: dec("850")})
}

func TestResolve_CompletaDesdeCatalogo(t *testing.T) {
	r := billing.NewLineItemResolver(catalog())

	items, err := r.Resolve(context.Background(), []dto.InvoiceItemRequest{
		{ProductID: ptr(int64(1)), Quantity: dec("3")},
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Web Development", items[0].Description)
	assert.True(t, items[0].UnitPrice.Equal(dec("850")))
	assert.True(t, items[0].LineTotal.Equal(dec("2550")))
	assert.Equal(t, int64(1), *items[0].ProductID)
}

func TestResolve_ValoresExplicitosPrevalecen(t *testing.T) {
	products := catalog()
	r := billing.NewLineItemResolver(products)

	items, err := r.Resolve(context.Background(), []dto.InvoiceItemRequest{
		{ProductID: ptr(int64(1)), Description: ptr("Landing page"), Quantity: dec("2"), UnitPrice: ptr(dec("600"))},
	})

	require.NoError(t, err)
	assert.Equal(t, "Landing page", items[0].Description)
	assert.True(t, items[0].LineTotal.Equal(dec("1200")))
	assert.Equal(t, 0, products.reads)
}

func TestResolve_ConservaOrdenYConsultaUnaVez(t *testing.T) {
	products := catalog()
	r := billing.NewLineItemResolver(products)

	items, err := r.Resolve(context.Background(), []dto.InvoiceItemRequest{
		{ProductID: ptr(int64(1)), Quantity: dec("1")},
		{Description: ptr("Domain"), Quantity: dec("1"), UnitPrice: ptr(dec("150")), Notes: ptr("anual")},
		{ProductID: ptr(int64(1)), Quantity: dec("0.5")},
	})

	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, i, it.Position)
	}
	assert.Equal(t, "Domain", items[1].Description)
	assert.Equal(t, "anual", *items[1].Notes)
	assert.True(t, items[2].LineTotal.Equal(dec("425")))
	assert.Equal(t, 1, products.reads)
}

func TestResolve_ProductoInexistente(t *testing.T) {
	r := billing.NewLineItemResolver(catalog())

	_, err := r.Resolve(context.Background(), []dto.InvoiceItemRequest{
		{ProductID: ptr(int64(42)), Quantity: dec("1")},
	})

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "product", nf.Entity)
	assert.Equal(t, "42", nf.ID)
}

func TestResolve_Vacio(t *testing.T) {
	r := billing.NewLineItemResolver(catalog())

	_, err := r.Resolve(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
