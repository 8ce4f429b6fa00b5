package postgres

import (
	"errors"
	"strings"

	"github.com/guidefari/invoicing/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// persistence envuelve un error del driver como fallo de persistencia.
func persistence(op string, err error) error {
	return &domain.PersistenceError{Op: op, Err: err}
}
