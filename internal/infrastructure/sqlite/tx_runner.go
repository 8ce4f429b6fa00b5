package sqlite

import (
	"context"
	"database/sql"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/domain/repository"
)

var _ billing.InvoiceTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// RunInvoice inicia una transacción, ejecuta fn con el repo de facturas atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence("iniciar transacción", err)
	}
	defer tx.Rollback()

	if err := fn(&InvoiceRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return persistence("confirmar transacción", err)
	}
	return nil
}
