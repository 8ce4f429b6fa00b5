package usecase

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

// ProductUseCase casos de uso del catálogo. DefaultPrice es sólo el precio sugerido para nuevas líneas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	if in.DefaultPrice.IsNegative() {
		return nil, &domain.ValidationError{Field: "default_price", Reason: "no puede ser negativo"}
	}
	var description *string
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		description = in.Description
	}
	product := &entity.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  description,
		DefaultPrice: in.DefaultPrice,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "product", ID: strconv.FormatInt(id, 10)}
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DefaultPrice: p.DefaultPrice,
		CreatedAt:    p.CreatedAt,
	}
}
