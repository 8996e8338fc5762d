package ledger

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del apply:
// validación bajo lock, escritura del ledger y actualización de la proyección
// se confirman juntas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
	) error) error
}
