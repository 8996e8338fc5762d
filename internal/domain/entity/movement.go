package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (conjunto cerrado).
const (
	MovementTypeIN     = "IN"     // entrada a una ubicación
	MovementTypeOUT    = "OUT"    // salida de una ubicación
	MovementTypeMOVE   = "MOVE"   // traslado entre ubicaciones
	MovementTypeADJUST = "ADJUST" // ajuste con dirección explícita
	MovementTypeCOUNT  = "COUNT"  // conteo físico: reconcilia al saldo observado
)

// Dirección de un ADJUST. La cantidad del movimiento es siempre positiva;
// la dirección decide el signo del delta sobre la proyección.
const (
	AdjustIncrease = "INCREASE"
	AdjustDecrease = "DECREASE"
)

// Movement es la entidad central del ledger: un registro append-only de un
// evento de stock aceptado. Nunca se muta ni se borra.
type Movement struct {
	ID             int64  // ordinal asignado al aceptar; define el orden total de aplicación
	MovementUUID   string // clave de idempotencia, única para siempre
	Type           string
	ProductID      string
	FromLocationID *string
	ToLocationID   *string
	Quantity       decimal.Decimal // positiva; en COUNT es el saldo observado (puede ser 0)
	AdjustDirection string         // solo ADJUST: INCREASE | DECREASE
	Reason         string
	Reference      string
	CreatedAt      time.Time
}

// MovementWithNames es un movimiento unido con identificadores legibles
// de producto y ubicaciones (para listados).
type MovementWithNames struct {
	Movement
	ProductSKU       string
	ProductName      string
	FromLocationCode string
	ToLocationCode   string
}
