package postgres

import (
	"context"
	"errors"

	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/jackc/pgx/v5"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, description, default_price, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.Name, p.Description, p.DefaultPrice, p.CreatedAt).Scan(&p.ID); err != nil {
		return persistence("insertar producto", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT id, name, description, default_price, created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.DefaultPrice, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistence("obtener producto", err)
	}
	return &p, nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT id, name, description, default_price, created_at FROM products ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, persistence("listar productos", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.DefaultPrice, &p.CreatedAt); err != nil {
			return nil, persistence("leer producto", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("listar productos", err)
	}
	return list, nil
}
