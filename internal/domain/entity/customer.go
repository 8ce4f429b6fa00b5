package entity

import "time"

// Customer representa el cliente facturado (bloque "BILL TO").
type Customer struct {
	ID            int64
	Name          string
	VATNumber     *string
	StreetAddress string
	City          string
	PostalCode    string
	Country       string
	Email         string
	Phone         string
	CreatedAt     time.Time
}
