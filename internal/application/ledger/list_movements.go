package ledger

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// ListMovementsUseCase lista los movimientos del ledger (más recientes primero)
// unidos con SKU/nombre de producto y códigos de ubicación.
type ListMovementsUseCase struct {
	movementRepo repository.MovementRepository
	maxLimit     int
}

// NewListMovementsUseCase construye el caso de uso. maxLimit acota el tamaño
// de página (también es el default cuando el caller no pide límite).
func NewListMovementsUseCase(movementRepo repository.MovementRepository, maxLimit int) *ListMovementsUseCase {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &ListMovementsUseCase{movementRepo: movementRepo, maxLimit: maxLimit}
}

// List retorna hasta limit movimientos en orden descendente de ID.
// limit <= 0 o mayor al tope usa el tope configurado.
func (uc *ListMovementsUseCase) List(ctx context.Context, limit int) ([]*entity.MovementWithNames, error) {
	if limit <= 0 || limit > uc.maxLimit {
		limit = uc.maxLimit
	}
	return uc.movementRepo.List(ctx, limit)
}
