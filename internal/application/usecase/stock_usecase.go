package usecase

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// StockUseCase lecturas puntuales y listados de la proyección de saldos.
// Solo lectura: la proyección únicamente muta dentro del apply atómico del ledger.
type StockUseCase struct {
	repo repository.StockLevelRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockLevelRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Get retorna el saldo de un par (producto, ubicación); cero si nunca fue tocado.
func (uc *StockUseCase) Get(ctx context.Context, productID, locationID string) (*dto.StockLevelResponse, error) {
	level, err := uc.repo.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStockLevelResponse(level)
	return &resp, nil
}

// List lista saldos materializados con paginación.
func (uc *StockUseCase) List(ctx context.Context, limit, offset int) ([]dto.StockLevelResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.NewStockLevelResponse(l))
	}
	return items, nil
}
