package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create hace append del movimiento. El ordinal (BIGSERIAL) y created_at los
// asigna la BD; se devuelven vía RETURNING. Una violación del unique de
// movement_uuid es la carrera de duplicado concurrente: domain.ErrDuplicateMovement.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (movement_uuid, type, product_id, from_location_id, to_location_id, quantity, adjust_direction, reason, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	adjustDirection := (*string)(nil)
	if m.AdjustDirection != "" {
		adjustDirection = &m.AdjustDirection
	}
	err := r.q.QueryRow(ctx, query,
		m.MovementUUID, m.Type, m.ProductID, m.FromLocationID, m.ToLocationID,
		m.Quantity, adjustDirection, m.Reason, m.Reference,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: movement_uuid %s", domain.ErrDuplicateMovement, m.MovementUUID)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByUUID obtiene un movimiento por su clave de idempotencia. nil si no existe.
func (r *MovementRepo) GetByUUID(ctx context.Context, movementUUID string) (*entity.Movement, error) {
	query := `
		SELECT id, movement_uuid, type, product_id, from_location_id, to_location_id, quantity, adjust_direction, reason, reference, created_at
		FROM movements WHERE movement_uuid = $1`
	var m entity.Movement
	var adjustDirection *string
	err := r.q.QueryRow(ctx, query, movementUUID).Scan(
		&m.ID, &m.MovementUUID, &m.Type, &m.ProductID, &m.FromLocationID, &m.ToLocationID,
		&m.Quantity, &adjustDirection, &m.Reason, &m.Reference, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by uuid: %w", err)
	}
	if adjustDirection != nil {
		m.AdjustDirection = *adjustDirection
	}
	return &m, nil
}

// List lista movimientos (más recientes primero) unidos con SKU/nombre de
// producto y códigos de ubicación legibles.
func (r *MovementRepo) List(ctx context.Context, limit int) ([]*entity.MovementWithNames, error) {
	query := `
		SELECT m.id, m.movement_uuid, m.type, m.product_id, m.from_location_id, m.to_location_id,
		       m.quantity, m.adjust_direction, m.reason, m.reference, m.created_at,
		       p.sku, p.name, COALESCE(lf.code, ''), COALESCE(lt.code, '')
		FROM movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id
		ORDER BY m.id DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementWithNames
	for rows.Next() {
		var m entity.MovementWithNames
		var adjustDirection *string
		if err := rows.Scan(
			&m.ID, &m.MovementUUID, &m.Type, &m.ProductID, &m.FromLocationID, &m.ToLocationID,
			&m.Quantity, &adjustDirection, &m.Reason, &m.Reference, &m.CreatedAt,
			&m.ProductSKU, &m.ProductName, &m.FromLocationCode, &m.ToLocationCode,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if adjustDirection != nil {
			m.AdjustDirection = *adjustDirection
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
