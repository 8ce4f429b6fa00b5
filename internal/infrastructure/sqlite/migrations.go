package sqlite

import "database/sql"

// Montos y tasas como TEXT (decimal exacto). created_at en segundos Unix; due_date YYYY-MM-DD.
const schema = `
CREATE TABLE IF NOT EXISTS business_profile (
	id                  INTEGER PRIMARY KEY CHECK (id = 1),
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
	default_vat_rate    TEXT,
	updated_at          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	vat_number     TEXT,
	street_address TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	postal_code    TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	created_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	description   TEXT,
	default_price TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_number TEXT NOT NULL UNIQUE,
	customer_id    INTEGER NOT NULL REFERENCES customers(id),
	created_at     INTEGER NOT NULL,
	due_date       TEXT NOT NULL,
	vat_rate       TEXT,
	notes          TEXT,
	subtotal       TEXT NOT NULL,
	vat_amount     TEXT NOT NULL,
	total          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_line_items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_id  INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
	product_id  INTEGER REFERENCES products(id),
	description TEXT NOT NULL,
	quantity    TEXT NOT NULL,
	unit_price  TEXT NOT NULL,
	line_total  TEXT NOT NULL,
	notes       TEXT,
	position    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_invoices_customer_id ON invoices(customer_id);
CREATE INDEX IF NOT EXISTS idx_invoice_line_items_invoice ON invoice_line_items(invoice_id, position);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
