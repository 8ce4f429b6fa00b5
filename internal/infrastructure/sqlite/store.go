// Package sqlite implementa los repositorios sobre SQLite (driver Go puro, sin CGO).
// Pensado para instalaciones de un solo usuario y para pruebas; los montos se guardan
// como TEXT para conservar la precisión decimal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guidefari/invoicing/internal/domain"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const dateLayout = "2006-01-02"

// dbtx lo que necesitan los repositorios; lo cumplen *sql.DB y *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store base de datos SQLite con sus repositorios.
type Store struct {
	db *sql.DB
}

// New abre (o crea) la base en path, crea los directorios padre y aplica el esquema.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de la base: %w", err)
		}
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	// Una sola conexión: SQLite serializa las escrituras de todos modos.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{q: s.db} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{q: s.db} }

// BusinessProfile repositorio del perfil del emisor.
func (s *Store) BusinessProfile() *BusinessProfileRepo { return &BusinessProfileRepo{q: s.db} }

// Invoices repositorio de facturas fuera de transacción (lecturas).
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{q: s.db} }

// TxRunner ejecuta la creación de facturas en una transacción.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{db: s.db} }

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func persistence(op string, err error) error {
	return &domain.PersistenceError{Op: op, Err: err}
}

func unixToTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
