package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	DefaultPrice decimal.Decimal `json:"default_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
