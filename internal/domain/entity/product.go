package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product ítem de catálogo; DefaultPrice sólo se usa como valor por defecto de las líneas.
type Product struct {
	ID           int64
	Name         string
	Description  *string
	DefaultPrice decimal.Decimal
	CreatedAt    time.Time
}
