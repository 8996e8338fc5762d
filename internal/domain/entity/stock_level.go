package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa el saldo actual de un producto en una ubicación.
// Es una proyección derivada del ledger de movimientos: siempre reconstruible
// por replay en orden ascendente de ID. Un saldo cero es una fila válida.
type StockLevel struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
