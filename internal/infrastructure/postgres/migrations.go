package postgres

import (
	"context"
	"fmt"
)

// schema es idempotente; se aplica al arrancar.
const schema = `
CREATE TABLE IF NOT EXISTS business_profile (
	id                  SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	company_name        TEXT NOT NULL,
	street_address      TEXT NOT NULL DEFAULT '',
	city                TEXT NOT NULL DEFAULT '',
	postal_code         TEXT NOT NULL DEFAULT '',
	country             TEXT NOT NULL DEFAULT '',
	vat_number          TEXT NOT NULL DEFAULT '',
	email               TEXT NOT NULL DEFAULT '',
	phone               TEXT NOT NULL DEFAULT '',
	logo_path           TEXT,
	account_holder_name TEXT NOT NULL DEFAULT '',
	bank_name           TEXT NOT NULL DEFAULT '',
	account_number      TEXT NOT NULL DEFAULT '',
	branch_code         TEXT NOT NULL DEFAULT '',
	iban                TEXT,
	default_vat_rate    NUMERIC,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	vat_number     TEXT,
	street_address TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	postal_code    TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT,
	default_price NUMERIC NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
	id             BIGSERIAL PRIMARY KEY,
	invoice_number TEXT NOT NULL UNIQUE,
	customer_id    BIGINT NOT NULL REFERENCES customers(id),
	created_at     TIMESTAMPTZ NOT NULL,
	due_date       DATE NOT NULL,
	vat_rate       NUMERIC,
	notes          TEXT,
	subtotal       NUMERIC NOT NULL,
	vat_amount     NUMERIC NOT NULL,
	total          NUMERIC NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_line_items (
	id          BIGSERIAL PRIMARY KEY,
	invoice_id  BIGINT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	product_id  BIGINT REFERENCES products(id),
	description TEXT NOT NULL,
	quantity    NUMERIC NOT NULL,
	unit_price  NUMERIC NOT NULL,
	line_total  NUMERIC NOT NULL,
	notes       TEXT,
	position    INT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_invoices_customer_id ON invoices(customer_id);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_invoice_line_items_invoice ON invoice_line_items(invoice_id, position);
`

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
