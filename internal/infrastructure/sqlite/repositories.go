package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/shopspring/decimal"
)

var (
	_ repository.CustomerRepository        = (*CustomerRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.BusinessProfileRepository = (*BusinessProfileRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
)

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullDecimal(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerRepo implementación SQLite de CustomerRepository.
type CustomerRepo struct {
	q dbtx
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (name, vat_number, street_address, city, postal_code, country, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.VATNumber, c.StreetAddress, c.City, c.PostalCode, c.Country, c.Email, c.Phone, c.CreatedAt.Unix())
	if err != nil {
		return persistence("insertar cliente", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return persistence("insertar cliente", err)
	}
	return nil
}

const customerColumns = `id, name, vat_number, street_address, city, postal_code, country, email, phone, created_at`

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("obtener cliente", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, persistence("listar clientes", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, persistence("leer cliente", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listar clientes", err)
	}
	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*entity.Customer, error) {
	var (
		c         entity.Customer
		vat       sql.NullString
		createdAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &vat, &c.StreetAddress, &c.City, &c.PostalCode,
		&c.Country, &c.Email, &c.Phone, &createdAt); err != nil {
		return nil, err
	}
	c.VATNumber = nullString(vat)
	c.CreatedAt = unixToTime(createdAt)
	return &c, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo implementación SQLite de ProductRepository.
type ProductRepo struct {
	q dbtx
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO products (name, description, default_price, created_at) VALUES (?, ?, ?, ?)`,
		p.Name, p.Description, p.DefaultPrice.String(), p.CreatedAt.Unix())
	if err != nil {
		return persistence("insertar producto", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return persistence("insertar producto", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx,
		`SELECT id, name, description, default_price, created_at FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("obtener producto", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, description, default_price, created_at FROM products ORDER BY name, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, persistence("listar productos", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, persistence("leer producto", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listar productos", err)
	}
	return list, nil
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p         entity.Product
		desc      sql.NullString
		createdAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &p.DefaultPrice, &createdAt); err != nil {
		return nil, err
	}
	p.Description = nullString(desc)
	p.CreatedAt = unixToTime(createdAt)
	return &p, nil
}

// ── Perfil del emisor ─────────────────────────────────────────────────────────

// BusinessProfileRepo implementación SQLite de BusinessProfileRepository (fila única id = 1).
type BusinessProfileRepo struct {
	q dbtx
}

func (r *BusinessProfileRepo) Get(ctx context.Context) (*entity.BusinessProfile, error) {
	var (
		p              entity.BusinessProfile
		logo, iban     sql.NullString
		defaultVATRate decimal.NullDecimal
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT company_name, street_address, city, postal_code, country, vat_number, email, phone,
		       logo_path, account_holder_name, bank_name, account_number, branch_code, iban, default_vat_rate
		FROM business_profile WHERE id = 1`).Scan(
		&p.CompanyName, &p.StreetAddress, &p.City, &p.PostalCode, &p.Country, &p.VATNumber, &p.Email, &p.Phone,
		&logo, &p.AccountHolderName, &p.BankName, &p.AccountNumber, &p.BranchCode, &iban, &defaultVATRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("obtener perfil del emisor", err)
	}
	p.LogoPath = nullString(logo)
	p.IBAN = nullString(iban)
	p.DefaultVATRate = nullDecimal(defaultVATRate)
	return &p, nil
}

func (r *BusinessProfileRepo) Save(ctx context.Context, p *entity.BusinessProfile) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO business_profile (id, company_name, street_address, city, postal_code, country, vat_number,
			email, phone, logo_path, account_holder_name, bank_name, account_number, branch_code, iban, default_vat_rate, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			company_name = excluded.company_name, street_address = excluded.street_address,
			city = excluded.city, postal_code = excluded.postal_code, country = excluded.country,
			vat_number = excluded.vat_number, email = excluded.email, phone = excluded.phone,
			logo_path = excluded.logo_path, account_holder_name = excluded.account_holder_name,
			bank_name = excluded.bank_name, account_number = excluded.account_number,
			branch_code = excluded.branch_code, iban = excluded.iban,
			default_vat_rate = excluded.default_vat_rate, updated_at = excluded.updated_at`,
		p.CompanyName, p.StreetAddress, p.City, p.PostalCode, p.Country, p.VATNumber, p.Email, p.Phone,
		p.LogoPath, p.AccountHolderName, p.BankName, p.AccountNumber, p.BranchCode, p.IBAN,
		decimalArg(p.DefaultVATRate), time.Now().Unix(),
	)
	if err != nil {
		return persistence("guardar perfil del emisor", err)
	}
	return nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceRepo implementación SQLite de InvoiceRepository.
type InvoiceRepo struct {
	q dbtx
}

func (r *InvoiceRepo) ListInvoiceNumbers(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT invoice_number FROM invoices WHERE invoice_number LIKE ?`, prefix+"%")
	if err != nil {
		return nil, persistence("listar números de factura", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, persistence("leer número de factura", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listar números de factura", err)
	}
	return numbers, nil
}

func (r *InvoiceRepo) CreateWithLineItems(ctx context.Context, inv *entity.Invoice) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO invoices (invoice_number, customer_id, created_at, due_date, vat_rate, notes, subtotal, vat_amount, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.InvoiceNumber, inv.CustomerID, inv.CreatedAt.Unix(), inv.DueDate.Format(dateLayout),
		decimalArg(inv.VATRate), inv.Notes, inv.Subtotal.String(), inv.VATAmount.String(), inv.Total.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return persistence("insertar factura", err)
	}
	if inv.ID, err = res.LastInsertId(); err != nil {
		return persistence("insertar factura", err)
	}

	for i := range inv.LineItems {
		li := &inv.LineItems[i]
		li.InvoiceID = inv.ID
		res, err := r.q.ExecContext(ctx, `
			INSERT INTO invoice_line_items (invoice_id, product_id, description, quantity, unit_price, line_total, notes, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			li.InvoiceID, li.ProductID, li.Description, li.Quantity.String(), li.UnitPrice.String(),
			li.LineTotal.String(), li.Notes, li.Position)
		if err != nil {
			return persistence(fmt.Sprintf("insertar línea %d", li.Position), err)
		}
		if li.ID, err = res.LastInsertId(); err != nil {
			return persistence(fmt.Sprintf("insertar línea %d", li.Position), err)
		}
	}
	return nil
}

const invoiceColumns = `id, invoice_number, customer_id, created_at, due_date, vat_rate, notes, subtotal, vat_amount, total`

func (r *InvoiceRepo) GetWithLineItems(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("obtener factura", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, invoice_id, product_id, description, quantity, unit_price, line_total, notes, position
		FROM invoice_line_items WHERE invoice_id = ? ORDER BY position, id`, id)
	if err != nil {
		return nil, persistence("obtener líneas de factura", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			li        entity.InvoiceLineItem
			productID sql.NullInt64
			notes     sql.NullString
		)
		if err := rows.Scan(&li.ID, &li.InvoiceID, &productID, &li.Description, &li.Quantity,
			&li.UnitPrice, &li.LineTotal, &notes, &li.Position); err != nil {
			return nil, persistence("leer línea de factura", err)
		}
		if productID.Valid {
			pid := productID.Int64
			li.ProductID = &pid
		}
		li.Notes = nullString(notes)
		inv.LineItems = append(inv.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("obtener líneas de factura", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
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

func scanInvoice(row scanner) (*entity.Invoice, error) {
	var (
		inv       entity.Invoice
		createdAt int64
		dueDate   string
		vatRate   decimal.NullDecimal
		notes     sql.NullString
	)
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &createdAt, &dueDate,
		&vatRate, &notes, &inv.Subtotal, &inv.VATAmount, &inv.Total); err != nil {
		return nil, err
	}
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return nil, fmt.Errorf("fecha de vencimiento %q: %w", dueDate, err)
	}
	inv.CreatedAt = unixToTime(createdAt)
	inv.DueDate = due
	inv.VATRate = nullDecimal(vatRate)
	inv.Notes = nullString(notes)
	return &inv, nil
}
