package postgres

import (
	"context"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ billing.InvoiceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice inicia una transacción, ejecuta fn con el repo de facturas atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return persistence("iniciar transacción", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return persistence("confirmar transacción", err)
	}
	return nil
}
