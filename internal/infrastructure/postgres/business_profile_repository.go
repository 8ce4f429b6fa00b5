package postgres

import (
	"context"
	"errors"

	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"

	"github.com/jackc/pgx/v5"
)

var _ repository.BusinessProfileRepository = (*BusinessProfileRepo)(nil)

// BusinessProfileRepo guarda el perfil del emisor en una tabla de fila única (id = 1).
type BusinessProfileRepo struct {
	q Querier
}

// NewBusinessProfileRepository construye el adaptador.
func NewBusinessProfileRepository(q Querier) *BusinessProfileRepo {
	return &BusinessProfileRepo{q: q}
}

// Get devuelve el perfil; (nil, nil) si no se ha configurado.
func (r *BusinessProfileRepo) Get(ctx context.Context) (*entity.BusinessProfile, error) {
	query := `
		SELECT company_name, street_address, city, postal_code, country, vat_number, email, phone,
		       logo_path, account_holder_name, bank_name, account_number, branch_code, iban, default_vat_rate
		FROM business_profile WHERE id = 1`
	var p entity.BusinessProfile
	err := r.q.QueryRow(ctx, query).Scan(
		&p.CompanyName, &p.StreetAddress, &p.City, &p.PostalCode, &p.Country, &p.VATNumber, &p.Email, &p.Phone,
		&p.LogoPath, &p.AccountHolderName, &p.BankName, &p.AccountNumber, &p.BranchCode, &p.IBAN, &p.DefaultVATRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistence("obtener perfil del emisor", err)
	}
	return &p, nil
}

// Save inserta o reemplaza el perfil.
func (r *BusinessProfileRepo) Save(ctx context.Context, p *entity.BusinessProfile) error {
	query := `
		INSERT INTO business_profile (id, company_name, street_address, city, postal_code, country, vat_number,
			email, phone, logo_path, account_holder_name, bank_name, account_number, branch_code, iban, default_vat_rate, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
		ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name, street_address = EXCLUDED.street_address,
			city = EXCLUDED.city, postal_code = EXCLUDED.postal_code, country = EXCLUDED.country,
			vat_number = EXCLUDED.vat_number, email = EXCLUDED.email, phone = EXCLUDED.phone,
			logo_path = EXCLUDED.logo_path, account_holder_name = EXCLUDED.account_holder_name,
			bank_name = EXCLUDED.bank_name, account_number = EXCLUDED.account_number,
			branch_code = EXCLUDED.branch_code, iban = EXCLUDED.iban,
			default_vat_rate = EXCLUDED.default_vat_rate, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		p.CompanyName, p.StreetAddress, p.City, p.PostalCode, p.Country, p.VATNumber, p.Email, p.Phone,
		p.LogoPath, p.AccountHolderName, p.BankName, p.AccountNumber, p.BranchCode, p.IBAN, p.DefaultVATRate,
	)
	if err != nil {
		return persistence("guardar perfil del emisor", err)
	}
	return nil
}
