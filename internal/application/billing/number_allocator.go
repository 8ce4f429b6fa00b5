package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/numbering"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/rs/zerolog"
)

// DefaultNumberAttempts intentos de asignación antes de rendirse ante colisiones.
const DefaultNumberAttempts = 5

// NumberAllocator lee el máximo número existente y persiste la factura en la misma transacción.
// Si otra escritura concurrente tomó el mismo número, la restricción UNIQUE del almacén
// devuelve domain.ErrDuplicate y se reintenta con un número recalculado.
type NumberAllocator struct {
	txRunner InvoiceTxRunner
	attempts int
	metrics  Metrics
	log      zerolog.Logger
}

// NewNumberAllocator construye el asignador. attempts <= 0 usa DefaultNumberAttempts.
func NewNumberAllocator(txRunner InvoiceTxRunner, attempts int, metrics Metrics, log zerolog.Logger) *NumberAllocator {
	if attempts <= 0 {
		attempts = DefaultNumberAttempts
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &NumberAllocator{txRunner: txRunner, attempts: attempts, metrics: metrics, log: log}
}

// Persist asigna InvoiceNumber e ID a inv y guarda cabecera y líneas.
func (a *NumberAllocator) Persist(ctx context.Context, inv *entity.Invoice) error {
	var err error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		inv.ID = 0
		err = a.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
			numbers, err := invoiceRepo.ListInvoiceNumbers(ctx, numbering.Prefix)
			if err != nil {
				return fmt.Errorf("listar números: %w", err)
			}
			inv.InvoiceNumber = numbering.Next(numbers)
			return invoiceRepo.CreateWithLineItems(ctx, inv)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		a.metrics.InvoiceNumberCollision()
		a.log.Warn().
			Str("invoice_number", inv.InvoiceNumber).
			Int("attempt", attempt).
			Msg("colisión de número de factura, reintentando")
	}
	return fmt.Errorf("asignar número de factura tras %d intentos: %w", a.attempts, err)
}
