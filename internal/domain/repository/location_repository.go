package repository

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones.
// Las ubicaciones se desactivan, nunca se borran una vez referenciadas.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
	SetActive(ctx context.Context, id string, active bool) error
}
