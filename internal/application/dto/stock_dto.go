package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// StockLevelResponse saldo actual de un producto en una ubicación.
type StockLevelResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewStockLevelResponse mapea la proyección a su representación de API.
func NewStockLevelResponse(l *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:  l.ProductID,
		LocationID: l.LocationID,
		Quantity:   l.Quantity,
		UpdatedAt:  l.UpdatedAt,
	}
}
