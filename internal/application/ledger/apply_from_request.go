package ledger

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/ledger"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, Proposed).
// Usar desde handlers HTTP o desde otros casos de uso con un dto.CreateMovementRequest.
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*entity.Movement, bool, error) {
	proposed := ledger.Proposed{
		MovementUUID:    in.MovementUUID,
		Type:            in.Type,
		ProductID:       in.ProductID,
		FromLocationID:  in.FromLocationID,
		ToLocationID:    in.ToLocationID,
		Quantity:        in.Quantity,
		AdjustDirection: in.AdjustDirection,
		Reason:          in.Reason,
		Reference:       in.Reference,
	}
	return uc.Apply(ctx, proposed)
}
