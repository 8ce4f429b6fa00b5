package postgres

import (
	"context"
	"errors"

	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/jackc/pgx/v5"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, vat_number, street_address, city, postal_code, country, email, phone, created_at`

// Create persiste un nuevo cliente y asigna su ID.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (name, vat_number, street_address, city, postal_code, country, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.Name, c.VATNumber, c.StreetAddress, c.City, c.PostalCode, c.Country, c.Email, c.Phone, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return persistence("insertar cliente", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistence("obtener cliente", err)
	}
	return c, nil
}

// List lista clientes ordenados por nombre.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
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

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.VATNumber, &c.StreetAddress, &c.City, &c.PostalCode,
		&c.Country, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
