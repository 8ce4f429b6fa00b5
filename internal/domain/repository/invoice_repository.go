package repository

import (
	"context"

	"github.com/guidefari/invoicing/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// ListInvoiceNumbers devuelve los números existentes que empiezan por prefix.
	ListInvoiceNumbers(ctx context.Context, prefix string) ([]string, error)
	// CreateWithLineItems inserta cabecera y líneas (en orden de Position) y asigna los IDs.
	// Un número de factura repetido devuelve domain.ErrDuplicate.
	CreateWithLineItems(ctx context.Context, invoice *entity.Invoice) error
	// GetWithLineItems devuelve (nil, nil) si la factura no existe.
	GetWithLineItems(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
}
