package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/ledger"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// ApplyMovementUseCase es el único punto de entrada mutador del ledger:
// valida un movimiento propuesto y lo aplica atómicamente (append del
// movimiento + actualización de la proyección de saldos) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository

	allowNegativeStock bool
}

// NewApplyMovementUseCase construye el caso de uso.
// allowNegativeStock deja pasar saldos negativos (backorder); por defecto debe ser false.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	allowNegativeStock bool,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:           txRunner,
		movementRepo:       movementRepo,
		productRepo:        productRepo,
		locationRepo:       locationRepo,
		allowNegativeStock: allowNegativeStock,
	}
}

// Apply valida y aplica un movimiento. Retorna el registro aceptado y un flag
// alreadyApplied: true cuando el movement_uuid ya existía y se retorna el
// registro original sin reaplicar (idempotencia).
//
// Orden de decisión: chequeos estructurales (puros), resolución de registros
// (producto/ubicaciones), corto-circuito por uuid duplicado y, dentro de la
// transacción, re-validación de stock insuficiente bajo las filas bloqueadas.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, proposed ledger.Proposed) (*entity.Movement, bool, error) {
	p := ledger.Normalize(proposed)

	if err := ledger.ValidateStructure(p); err != nil {
		return nil, false, err
	}

	if err := uc.resolveRegistries(ctx, p); err != nil {
		return nil, false, err
	}

	// Idempotencia: si el cliente trae uuid y ya está en el ledger, se retorna
	// el registro original. Sin uuid se genera uno fresco (sin riesgo de colisión accidental).
	if p.MovementUUID != "" {
		existing, err := uc.movementRepo.GetByUUID(ctx, p.MovementUUID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	} else {
		p.MovementUUID = uuid.New().String()
	}

	mov := movementFromProposed(p)

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
	) error {
		return uc.applyInTx(ctx, movRepo, stockRepo, p, mov)
	})
	if err != nil {
		// Dos submissions concurrentes con el mismo uuid: el unique de BD cierra
		// la carrera que el chequeo previo no puede cerrar. Se trata como duplicado.
		if errors.Is(err, domain.ErrDuplicateMovement) {
			existing, lookupErr := uc.movementRepo.GetByUUID(ctx, mov.MovementUUID)
			if lookupErr == nil && existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}

	return mov, false, nil
}

// applyInTx ejecuta la unidad atómica: bloquear saldos afectados en orden
// determinista, re-validar stock insuficiente, aplicar deltas y hacer append
// del movimiento. Cualquier error revierte toda la transacción.
func (uc *ApplyMovementUseCase) applyInTx(
	ctx context.Context,
	movRepo repository.MovementRepository,
	stockRepo repository.StockLevelRepository,
	p ledger.Proposed,
	mov *entity.Movement,
) error {
	deltas := ledger.Deltas(p)

	// Bloqueo en orden determinista de ubicación para evitar deadlocks entre
	// MOVEs opuestos concurrentes.
	locked := make([]string, 0, len(deltas))
	for _, d := range deltas {
		locked = append(locked, d.LocationID)
	}
	sort.Strings(locked)

	// Materializar la fila antes de bloquearla: FOR UPDATE sobre un par sin
	// fila no adquiere lock y dos applies concurrentes leerían ambos saldo
	// cero (fatal para COUNT, que resuelve contra el saldo bloqueado).
	balances := make(map[string]decimal.Decimal, len(locked))
	for _, locID := range locked {
		if _, ok := balances[locID]; ok {
			continue
		}
		if err := stockRepo.Ensure(ctx, p.ProductID, locID); err != nil {
			return err
		}
		level, err := stockRepo.GetForUpdate(ctx, p.ProductID, locID)
		if err != nil {
			return err
		}
		balances[locID] = level.Quantity
	}

	for _, d := range deltas {
		eff := d.Resolve(balances[d.LocationID])
		newBalance := balances[d.LocationID].Add(eff)
		if newBalance.IsNegative() && !uc.allowNegativeStock {
			return fmt.Errorf("%w: producto %s en ubicación %s", domain.ErrInsufficientStock, p.ProductID, d.LocationID)
		}
		balances[d.LocationID] = newBalance

		// Un COUNT que coincide con el saldo vigente aplica delta cero sobre
		// la fila ya materializada.
		if err := stockRepo.ApplyDelta(ctx, p.ProductID, d.LocationID, eff); err != nil {
			return err
		}
	}

	return movRepo.Create(ctx, mov)
}

// resolveRegistries valida producto y ubicaciones contra los registros de
// solo lectura. Una ubicación inactiva rechaza igual que una inexistente.
func (uc *ApplyMovementUseCase) resolveRegistries(ctx context.Context, p ledger.Proposed) error {
	product, err := uc.productRepo.GetByID(ctx, p.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, p.ProductID)
	}

	for _, locID := range ledger.Locations(p) {
		loc, err := uc.locationRepo.GetByID(ctx, locID)
		if err != nil {
			return err
		}
		if loc == nil || !loc.Active {
			return fmt.Errorf("%w: %s", domain.ErrUnknownLocation, locID)
		}
	}
	return nil
}

func movementFromProposed(p ledger.Proposed) *entity.Movement {
	mov := &entity.Movement{
		MovementUUID: p.MovementUUID,
		Type:         p.Type,
		ProductID:    p.ProductID,
		Quantity:     *p.Quantity,
		Reason:       p.Reason,
		Reference:    p.Reference,
	}
	if p.Type == entity.MovementTypeADJUST {
		mov.AdjustDirection = p.AdjustDirection
	}
	if p.FromLocationID != "" {
		from := p.FromLocationID
		mov.FromLocationID = &from
	}
	if p.ToLocationID != "" {
		to := p.ToLocationID
		mov.ToLocationID = &to
	}
	return mov
}
