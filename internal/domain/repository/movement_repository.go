package repository

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el ledger de movimientos.
// El ledger es append-only: no hay Update ni Delete.
type MovementRepository interface {
	// Create inserta el movimiento y asigna ID ordinal y CreatedAt.
	// Una violación del unique de movement_uuid retorna domain.ErrDuplicateMovement.
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByUUID retorna el movimiento con esa clave de idempotencia, o nil si no existe.
	GetByUUID(ctx context.Context, movementUUID string) (*entity.Movement, error)
	// List retorna movimientos en orden descendente de ID, unidos con
	// identificadores legibles de producto y ubicaciones.
	List(ctx context.Context, limit int) ([]*entity.MovementWithNames, error)
}
