package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/jackc/pgx/v5"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, customer_id, created_at, due_date, vat_rate, notes, subtotal, vat_amount, total`

// ListInvoiceNumbers devuelve los números que empiezan por prefix.
func (r *InvoiceRepo) ListInvoiceNumbers(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT invoice_number FROM invoices WHERE invoice_number LIKE $1`, prefix+"%")
	if err != nil {
		return nil, persistence("listar números de factura", err)
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, persistence("listar números de factura", err)
	}
	return numbers, nil
}

// CreateWithLineItems inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *InvoiceRepo) CreateWithLineItems(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_number, customer_id, created_at, due_date, vat_rate, notes, subtotal, vat_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.InvoiceNumber, inv.CustomerID, inv.CreatedAt, inv.DueDate, inv.VATRate, inv.Notes,
		inv.Subtotal, inv.VATAmount, inv.Total,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return persistence("insertar factura", err)
	}

	lineQuery := `
		INSERT INTO invoice_line_items (invoice_id, product_id, description, quantity, unit_price, line_total, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	for i := range inv.LineItems {
		li := &inv.LineItems[i]
		li.InvoiceID = inv.ID
		err := r.q.QueryRow(ctx, lineQuery,
			li.InvoiceID, li.ProductID, li.Description, li.Quantity, li.UnitPrice, li.LineTotal, li.Notes, li.Position,
		).Scan(&li.ID)
		if err != nil {
			return persistence(fmt.Sprintf("insertar línea %d", li.Position), err)
		}
	}
	return nil
}

// GetWithLineItems obtiene la factura y sus líneas en orden; (nil, nil) si no existe.
func (r *InvoiceRepo) GetWithLineItems(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistence("obtener factura", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, product_id, description, quantity, unit_price, line_total, notes, position
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position, id`, id)
	if err != nil {
		return nil, persistence("obtener líneas de factura", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.InvoiceLineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.ProductID, &li.Description, &li.Quantity,
			&li.UnitPrice, &li.LineTotal, &li.Notes, &li.Position); err != nil {
			return nil, persistence("leer línea de factura", err)
		}
		inv.LineItems = append(inv.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("obtener líneas de factura", err)
	}
	return inv, nil
}

// List lista facturas, más recientes primero, sin líneas.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, persistence("listar facturas", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, persistence("leer factura", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listar facturas", err)
	}
	return list, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.CreatedAt, &inv.DueDate,
		&inv.VATRate, &inv.Notes, &inv.Subtotal, &inv.VATAmount, &inv.Total)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
