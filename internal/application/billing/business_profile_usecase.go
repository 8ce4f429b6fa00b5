package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"
)

// BusinessProfileUseCase lee y guarda el perfil del emisor.
type BusinessProfileUseCase struct {
	repo repository.BusinessProfileRepository
}

// NewBusinessProfileUseCase construye el caso de uso.
func NewBusinessProfileUseCase(repo repository.BusinessProfileRepository) *BusinessProfileUseCase {
	return &BusinessProfileUseCase{repo: repo}
}

// Get devuelve el perfil o *domain.NotFoundError si aún no existe.
func (uc *BusinessProfileUseCase) Get(ctx context.Context) (*dto.BusinessProfileResponse, error) {
	p, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener perfil del emisor: %w", err)
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "business_profile"}
	}
	out := dto.BusinessProfileResponse{
		CompanyName:       p.CompanyName,
		StreetAddress:     p.StreetAddress,
		City:              p.City,
		PostalCode:        p.PostalCode,
		Country:           p.Country,
		VATNumber:         p.VATNumber,
		Email:             p.Email,
		Phone:             p.Phone,
		LogoPath:          p.LogoPath,
		AccountHolderName: p.AccountHolderName,
		BankName:          p.BankName,
		AccountNumber:     p.AccountNumber,
		BranchCode:        p.BranchCode,
		IBAN:              p.IBAN,
		DefaultVATRate:    p.DefaultVATRate,
	}
	return &out, nil
}

// Save crea o reemplaza el perfil.
func (uc *BusinessProfileUseCase) Save(ctx context.Context, in dto.BusinessProfileRequest) (*dto.BusinessProfileResponse, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, &domain.ValidationError{Field: "company_name", Reason: "requerido"}
	}
	if in.DefaultVATRate != nil && in.DefaultVATRate.IsNegative() {
		return nil, &domain.ValidationError{Field: "default_vat_rate", Reason: "no puede ser negativa"}
	}
	profile := &entity.BusinessProfile{
		CompanyName:       strings.TrimSpace(in.CompanyName),
		StreetAddress:     in.StreetAddress,
		City:              in.City,
		PostalCode:        in.PostalCode,
		Country:           in.Country,
		VATNumber:         in.VATNumber,
		Email:             in.Email,
		Phone:             in.Phone,
		LogoPath:          nonBlank(in.LogoPath),
		AccountHolderName: in.AccountHolderName,
		BankName:          in.BankName,
		AccountNumber:     in.AccountNumber,
		BranchCode:        in.BranchCode,
		IBAN:              nonBlank(in.IBAN),
		DefaultVATRate:    in.DefaultVATRate,
	}
	if err := uc.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("guardar perfil del emisor: %w", err)
	}
	return uc.Get(ctx)
}
