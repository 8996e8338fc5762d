package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// StockLevelRepository define el puerto de la proyección de saldos.
// ApplyDelta solo debe invocarse desde la aplicación atómica del ledger.
type StockLevelRepository interface {
	// Get retorna el saldo actual; fila en cero si el par nunca fue tocado.
	Get(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)
	// Ensure materializa la fila del par con saldo cero si aún no existe.
	// Debe invocarse antes de GetForUpdate: sin fila, FOR UPDATE no bloquea nada.
	Ensure(ctx context.Context, productID, locationID string) error
	// GetForUpdate retorna el saldo bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockLevel, error)
	// ApplyDelta suma delta (firmado) al saldo del par, creando la fila si no existe.
	ApplyDelta(ctx context.Context, productID, locationID string, delta decimal.Decimal) error
	// List retorna saldos materializados con paginación.
	List(ctx context.Context, limit, offset int) ([]*entity.StockLevel, error)
}
