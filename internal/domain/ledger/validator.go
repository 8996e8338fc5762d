// Package ledger contiene las reglas puras del motor de movimientos:
// validación estructural de un movimiento propuesto y cálculo de los deltas
// de stock que implica. Sin I/O ni acceso a repositorios; determinista.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// Proposed es un movimiento propuesto, aún no aceptado por el ledger.
// Quantity es puntero para distinguir "ausente" de cero.
type Proposed struct {
	MovementUUID    string
	Type            string
	ProductID       string
	FromLocationID  string
	ToLocationID    string
	Quantity        *decimal.Decimal
	AdjustDirection string // solo ADJUST: INCREASE | DECREASE (vacío = INCREASE)
	Reason          string
	Reference       string
}

// Delta es la contribución firmada de un movimiento al saldo de una ubicación.
// Si Absolute es true (COUNT), Quantity es el saldo observado y el delta real
// se resuelve contra el saldo vigente bajo el lock de la transacción.
type Delta struct {
	LocationID string
	Quantity   decimal.Decimal
	Absolute   bool
}

// Normalize canonicaliza tipo y dirección (mayúsculas, INCREASE por defecto).
func Normalize(p Proposed) Proposed {
	p.Type = strings.ToUpper(strings.TrimSpace(p.Type))
	p.AdjustDirection = strings.ToUpper(strings.TrimSpace(p.AdjustDirection))
	if p.Type == entity.MovementTypeADJUST && p.AdjustDirection == "" {
		p.AdjustDirection = entity.AdjustIncrease
	}
	return p
}

// ValidateStructure aplica los chequeos estructurales previos a las reglas de
// negocio. Cada rechazo envuelve el sentinel de dominio correspondiente.
// No consulta registros: producto/ubicaciones se resuelven en el caso de uso.
func ValidateStructure(p Proposed) error {
	switch p.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeMOVE,
		entity.MovementTypeADJUST, entity.MovementTypeCOUNT:
	case "":
		return fmt.Errorf("%w: type es obligatorio", domain.ErrInvalidType)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidType, p.Type)
	}

	if p.ProductID == "" {
		return fmt.Errorf("%w: product_id", domain.ErrMissingField)
	}
	if p.Quantity == nil {
		return fmt.Errorf("%w: quantity", domain.ErrMissingField)
	}

	// COUNT reconcilia a un saldo observado: cero es un conteo legítimo
	// (estantería vacía). El resto de tipos exige cantidad estrictamente positiva.
	if p.Type == entity.MovementTypeCOUNT {
		if p.Quantity.IsNegative() {
			return fmt.Errorf("%w: el conteo observado no puede ser negativo", domain.ErrInvalidQuantity)
		}
	} else if !p.Quantity.IsPositive() {
		return fmt.Errorf("%w: debe ser mayor que cero", domain.ErrInvalidQuantity)
	}

	if p.Type == entity.MovementTypeADJUST {
		if p.AdjustDirection != entity.AdjustIncrease && p.AdjustDirection != entity.AdjustDecrease {
			return fmt.Errorf("%w: adjust_direction %q", domain.ErrInvalidType, p.AdjustDirection)
		}
	}

	return validateLocations(p)
}

// validateLocations exige las ubicaciones que cada tipo requiere.
func validateLocations(p Proposed) error {
	switch p.Type {
	case entity.MovementTypeIN:
		if p.ToLocationID == "" {
			return fmt.Errorf("%w: IN requiere to_location", domain.ErrMissingLocation)
		}
	case entity.MovementTypeOUT:
		if p.FromLocationID == "" {
			return fmt.Errorf("%w: OUT requiere from_location", domain.ErrMissingLocation)
		}
	case entity.MovementTypeMOVE:
		if p.FromLocationID == "" || p.ToLocationID == "" {
			return fmt.Errorf("%w: MOVE requiere from_location y to_location", domain.ErrMissingLocation)
		}
		if p.FromLocationID == p.ToLocationID {
			return fmt.Errorf("%w: MOVE requiere ubicaciones distintas", domain.ErrMissingLocation)
		}
	case entity.MovementTypeADJUST, entity.MovementTypeCOUNT:
		if p.ToLocationID == "" {
			return fmt.Errorf("%w: %s requiere to_location", domain.ErrMissingLocation, p.Type)
		}
	}
	return nil
}

// Deltas calcula las contribuciones de stock del movimiento ya validado.
// IN: +q en destino. OUT: -q en origen. MOVE: -q origen, +q destino.
// ADJUST: ±q en destino según dirección. COUNT: saldo absoluto en destino.
func Deltas(p Proposed) []Delta {
	q := *p.Quantity
	switch p.Type {
	case entity.MovementTypeIN:
		return []Delta{{LocationID: p.ToLocationID, Quantity: q}}
	case entity.MovementTypeOUT:
		return []Delta{{LocationID: p.FromLocationID, Quantity: q.Neg()}}
	case entity.MovementTypeMOVE:
		return []Delta{
			{LocationID: p.FromLocationID, Quantity: q.Neg()},
			{LocationID: p.ToLocationID, Quantity: q},
		}
	case entity.MovementTypeADJUST:
		if p.AdjustDirection == entity.AdjustDecrease {
			return []Delta{{LocationID: p.ToLocationID, Quantity: q.Neg()}}
		}
		return []Delta{{LocationID: p.ToLocationID, Quantity: q}}
	case entity.MovementTypeCOUNT:
		return []Delta{{LocationID: p.ToLocationID, Quantity: q, Absolute: true}}
	}
	return nil
}

// Resolve convierte un delta en la contribución firmada efectiva dado el saldo
// vigente de la ubicación (relevante para COUNT, que reconcilia al observado).
func (d Delta) Resolve(current decimal.Decimal) decimal.Decimal {
	if d.Absolute {
		return d.Quantity.Sub(current)
	}
	return d.Quantity
}

// Locations devuelve los IDs de ubicación referenciados por el movimiento,
// en el orden from, to (sin duplicados ni vacíos).
func Locations(p Proposed) []string {
	var ids []string
	if p.FromLocationID != "" {
		ids = append(ids, p.FromLocationID)
	}
	if p.ToLocationID != "" && p.ToLocationID != p.FromLocationID {
		ids = append(ids, p.ToLocationID)
	}
	return ids
}
