package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/invoicing"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// LineItemResolver completa las líneas solicitadas con datos del catálogo y calcula LineTotal.
// Los valores explícitos de la solicitud siempre prevalecen sobre los del producto.
type LineItemResolver struct {
	productRepo repository.ProductRepository
}

// NewLineItemResolver construye el resolvedor.
func NewLineItemResolver(productRepo repository.ProductRepository) *LineItemResolver {
	return &LineItemResolver{productRepo: productRepo}
}

// Resolve devuelve las líneas listas para persistir, en el mismo orden de la solicitud.
// Errores: *domain.ValidationError si falta descripción o precio o la cantidad no es positiva;
// *domain.NotFoundError si el producto referenciado no existe.
func (r *LineItemResolver) Resolve(ctx context.Context, items []dto.InvoiceItemRequest) ([]entity.InvoiceLineItem, error) {
	if len(items) == 0 {
		return nil, &domain.ValidationError{Field: "line_items", Reason: "se requiere al menos una línea"}
	}

	products := make(map[int64]*entity.Product)
	out := make([]entity.InvoiceLineItem, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("line_items[%d]", i)
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: field + ".quantity", Reason: "debe ser mayor que cero"}
		}

		description := nonBlank(item.Description)
		unitPrice := item.UnitPrice
		if item.ProductID != nil && (description == nil || unitPrice == nil) {
			product, err := r.product(ctx, *item.ProductID, products)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field, err)
			}
			if description == nil {
				name := product.Name
				description = &name
			}
			if unitPrice == nil {
				price := product.DefaultPrice
				unitPrice = &price
			}
		}
		if description == nil {
			return nil, &domain.ValidationError{Field: field + ".description", Reason: "requerida cuando no hay product_id"}
		}
		if unitPrice == nil {
			return nil, &domain.ValidationError{Field: field + ".unit_price", Reason: "requerido cuando no hay product_id"}
		}

		out = append(out, entity.InvoiceLineItem{
			ProductID:   item.ProductID,
			Description: *description,
			Quantity:    item.Quantity,
			UnitPrice:   *unitPrice,
			LineTotal:   invoicing.LineTotal(item.Quantity, *unitPrice),
			Notes:       nonBlank(item.Notes),
			Position:    i,
		})
	}
	return out, nil
}

// product consulta el catálogo una sola vez por ID dentro de la misma solicitud.
func (r *LineItemResolver) product(ctx context.Context, id int64, cache map[int64]*entity.Product) (*entity.Product, error) {
	if p, ok := cache[id]; ok {
		return p, nil
	}
	p, err := r.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "product", ID: strconv.FormatInt(id, 10)}
	}
	cache[id] = p
	return p, nil
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
