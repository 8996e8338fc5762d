package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
// movement_uuid es opcional: si el cliente lo envía actúa como clave de
// idempotencia; si no, el servidor genera uno.
type CreateMovementRequest struct {
	MovementUUID    string           `json:"movement_uuid,omitempty"`
	Type            string           `json:"type"`
	ProductID       string           `json:"product_id"`
	FromLocationID  string           `json:"from_location_id,omitempty"`
	ToLocationID    string           `json:"to_location_id,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity"`
	AdjustDirection string           `json:"adjust_direction,omitempty"` // ADJUST: INCREASE | DECREASE
	Reason          string           `json:"reason,omitempty"`
	Reference       string           `json:"reference,omitempty"`
}

// MovementResponse representación de un movimiento aceptado.
// already_applied es true cuando la petición fue un duplicado idempotente y
// se retorna el registro original.
type MovementResponse struct {
	ID              int64           `json:"id"`
	MovementUUID    string          `json:"movement_uuid"`
	Type            string          `json:"type"`
	ProductID       string          `json:"product_id"`
	FromLocationID  *string         `json:"from_location_id,omitempty"`
	ToLocationID    *string         `json:"to_location_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	AdjustDirection string          `json:"adjust_direction,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	AlreadyApplied  bool            `json:"already_applied"`
}

// MovementListItem movimiento unido con identificadores legibles para listados.
type MovementListItem struct {
	MovementResponse
	ProductSKU       string `json:"product_sku"`
	ProductName      string `json:"product_name"`
	FromLocationCode string `json:"from_location_code,omitempty"`
	ToLocationCode   string `json:"to_location_code,omitempty"`
}

// NewMovementResponse mapea la entidad a su representación de API.
func NewMovementResponse(m *entity.Movement, alreadyApplied bool) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		MovementUUID:    m.MovementUUID,
		Type:            m.Type,
		ProductID:       m.ProductID,
		FromLocationID:  m.FromLocationID,
		ToLocationID:    m.ToLocationID,
		Quantity:        m.Quantity,
		AdjustDirection: m.AdjustDirection,
		Reason:          m.Reason,
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
		AlreadyApplied:  alreadyApplied,
	}
}

// NewMovementListItem mapea un movimiento con nombres a su representación de API.
func NewMovementListItem(m *entity.MovementWithNames) MovementListItem {
	return MovementListItem{
		MovementResponse: NewMovementResponse(&m.Movement, false),
		ProductSKU:       m.ProductSKU,
		ProductName:      m.ProductName,
		FromLocationCode: m.FromLocationCode,
		ToLocationCode:   m.ToLocationCode,
	}
}
