package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guidefari/invoicing/internal/application/dto"
	"github.com/guidefari/invoicing/internal/domain"
	"github.com/guidefari/invoicing/internal/domain/entity"
	"github.com/guidefari/invoicing/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	customer := &entity.Customer{
		Name:          strings.TrimSpace(in.Name),
		VATNumber:     nonBlank(in.VATNumber),
		StreetAddress: in.StreetAddress,
		City:          in.City,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
		Email:         in.Email,
		Phone:         in.Phone,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "customer", ID: strconv.FormatInt(id, 10)}
	}
	return toCustomerResponse(c), nil
}

// List lista clientes por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		VATNumber:     c.VATNumber,
		StreetAddress: c.StreetAddress,
		City:          c.City,
		PostalCode:    c.PostalCode,
		Country:       c.Country,
		Email:         c.Email,
		Phone:         c.Phone,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}
