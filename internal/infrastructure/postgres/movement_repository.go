package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro es append-only: no hay UPDATE ni DELETE sobre movements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento confirmado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, batch_id, movement_type, quantity, destination_location_id, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''))`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BatchID, movement.MovementType, movement.Quantity,
		movement.DestinationLocationID, movement.Note, movement.CreatedAt, movement.CreatedBy)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, batch_id, movement_type, quantity, COALESCE(destination_location_id, ''),
		       note, created_at, COALESCE(created_by, '')
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.BatchID, &m.MovementType, &m.Quantity,
		&m.DestinationLocationID, &m.Note, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

const movementListQuery = `
	SELECT m.id, m.batch_id, m.movement_type, m.quantity,
	       COALESCE(m.destination_location_id, ''), m.note, m.created_at, COALESCE(m.created_by, ''),
	       p.name, b.lot_code, l.name, COALESCE(dl.name, '')
	FROM movements m
	JOIN batches b ON b.id = m.batch_id
	JOIN products p ON p.id = b.product_id
	JOIN locations l ON l.id = b.location_id
	LEFT JOIN locations dl ON dl.id = m.destination_location_id`

// List devuelve el historial global, más recientes primero.
func (r *MovementRepo) List(limit, offset int) ([]repository.MovementListItem, error) {
	query := movementListQuery + `
	ORDER BY m.created_at DESC
	LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

// ListByBatch devuelve el historial de un lote, más recientes primero.
func (r *MovementRepo) ListByBatch(batchID string, limit, offset int) ([]repository.MovementListItem, error) {
	query := movementListQuery + `
	WHERE m.batch_id = $1
	ORDER BY m.created_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, batchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by batch: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

// CountByBatch cuenta los movimientos de un lote (guardia de borrado).
func (r *MovementRepo) CountByBatch(batchID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

func scanMovementItems(rows pgx.Rows) ([]repository.MovementListItem, error) {
	var out []repository.MovementListItem
	for rows.Next() {
		var item repository.MovementListItem
		m := &item.Movement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.MovementType, &m.Quantity,
			&m.DestinationLocationID, &m.Note, &m.CreatedAt, &m.CreatedBy,
			&item.ProductName, &item.LotCode, &item.LocationName, &item.DestinationLocation); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
