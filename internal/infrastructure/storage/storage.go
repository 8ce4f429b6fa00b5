// Package storage abre el almacén configurado (PostgreSQL o SQLite) y entrega sus repositorios.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/guidefari/invoicing/internal/application/billing"
	"github.com/guidefari/invoicing/internal/domain/repository"
	"github.com/guidefari/invoicing/internal/infrastructure/postgres"
	"github.com/guidefari/invoicing/internal/infrastructure/sqlite"
	"github.com/guidefari/invoicing/pkg/config"

	"github.com/rs/zerolog"
)

// Repositories puertos de persistencia listos para inyectar en los casos de uso.
type Repositories struct {
	Invoices        repository.InvoiceRepository
	Customers       repository.CustomerRepository
	Products        repository.ProductRepository
	BusinessProfile repository.BusinessProfileRepository
	TxRunner        billing.InvoiceTxRunner

	close func()
}

// Close libera conexiones del almacén.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta según cfg.Driver y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Repositories, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conectar postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrar postgres: %w", err)
		}
		log.Info().Str("driver", "postgres").Msg("almacén listo")
		return &Repositories{
			Invoices:        postgres.NewInvoiceRepository(pool),
			Customers:       postgres.NewCustomerRepository(pool),
			Products:        postgres.NewProductRepository(pool),
			BusinessProfile: postgres.NewBusinessProfileRepository(pool),
			TxRunner:        postgres.NewTxRunner(pool),
			close:           pool.Close,
		}, nil

	case "sqlite":
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir sqlite: %w", err)
		}
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("almacén listo")
		return &Repositories{
			Invoices:        store.Invoices(),
			Customers:       store.Customers(),
			Products:        store.Products(),
			BusinessProfile: store.BusinessProfile(),
			TxRunner:        store.TxRunner(),
			close: func() {
				if err := store.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar sqlite")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("driver de base de datos desconocido %q (use postgres o sqlite)", cfg.Driver)
	}
}
