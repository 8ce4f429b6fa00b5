package repository

import (
	"context"

	"github.com/guidefari/invoicing/internal/domain/entity"
)

// BusinessProfileRepository persiste el perfil único del emisor.
type BusinessProfileRepository interface {
	// Get devuelve (nil, nil) si aún no se configuró el perfil.
	Get(ctx context.Context) (*entity.BusinessProfile, error)
	// Save crea o reemplaza el perfil.
	Save(ctx context.Context, profile *entity.BusinessProfile) error
}
