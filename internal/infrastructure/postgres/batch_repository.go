package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, lot_code, expiry_date, quantity, location_id, created_at`

// Create inserta un lote. Devuelve ErrDuplicate si (product, lot_code, location) ya existe.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, lot_code, expiry_date, quantity, location_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.LotCode, batch.ExpiryDate,
		batch.Quantity, batch.LocationID, batch.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch")
}

// GetForUpdate relee el lote bloqueando la fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción: el lock vive hasta el Commit.
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	batch, err := r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch for update")
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// GetOrCreateForUpdate resuelve el lote destino de un traslado: devuelve el
// lote (product, lot_code, location) con la fila bloqueada, o lo crea con
// cantidad 0 si no existe. El INSERT puede perder la carrera contra otra tx;
// en ese caso se reintenta el SELECT, que espera el lock del ganador.
func (r *BatchRepo) GetOrCreateForUpdate(productID, lotCode string, expiryDate time.Time, locationID string) (*entity.Batch, error) {
	selectQuery := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE product_id = $1 AND lot_code = $2 AND location_id = $3
		FOR UPDATE`
	batch, err := r.scanOne(r.q.QueryRow(context.Background(), selectQuery, productID, lotCode, locationID), "get destination batch")
	if err != nil {
		return nil, err
	}
	if batch != nil {
		return batch, nil
	}

	created := &entity.Batch{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LotCode:    lotCode,
		ExpiryDate: expiryDate,
		Quantity:   0,
		LocationID: locationID,
		CreatedAt:  time.Now(),
	}
	if err := r.Create(created); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Otra tx lo creó primero: el SELECT bloquea hasta que esa tx termine.
		batch, err = r.scanOne(r.q.QueryRow(context.Background(), selectQuery, productID, lotCode, locationID), "get destination batch")
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return nil, domain.ErrConflict
		}
		return batch, nil
	}
	return created, nil
}

// SetQuantity persiste la cantidad de un lote. El caller (motor de
// movimientos) ya validó quantity >= 0 bajo el lock de la fila.
func (r *BatchRepo) SetQuantity(id string, quantity int64) error {
	query := `UPDATE batches SET quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("set batch quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update edita lot_code, expiry_date y location_id. La cantidad no se toca aquí.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches
		SET lot_code = $2, expiry_date = $3, location_id = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.LotCode, batch.ExpiryDate, batch.LocationID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote. El caso de uso ya verificó que no tiene movimientos.
func (r *BatchRepo) Delete(id string) error {
	query := `DELETE FROM batches WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve lotes con nombres de producto, categoría y ubicación,
// ordenados por vencimiento ascendente (lo más urgente primero).
func (r *BatchRepo) List(filter repository.BatchFilter) ([]repository.BatchListItem, error) {
	query := `
		SELECT b.id, b.product_id, b.lot_code, b.expiry_date, b.quantity, b.location_id, b.created_at,
		       p.name, c.name, l.name
		FROM batches b
		JOIN products p ON p.id = b.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN locations l ON l.id = b.location_id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%'
		       OR b.lot_code ILIKE '%' || $1 || '%'
		       OR l.name ILIKE '%' || $1 || '%')
		ORDER BY b.expiry_date, p.name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []repository.BatchListItem
	for rows.Next() {
		var item repository.BatchListItem
		b := &item.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.LotCode, &b.ExpiryDate, &b.Quantity,
			&b.LocationID, &b.CreatedAt, &item.ProductName, &item.CategoryName, &item.LocationName); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListByProduct devuelve los lotes de un producto ordenados por vencimiento.
func (r *BatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE product_id = $1 ORDER BY expiry_date`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches by product: %w", err)
	}
	defer rows.Close()

	var out []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.LotCode, &b.ExpiryDate,
			&b.Quantity, &b.LocationID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row, op string) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.ProductID, &b.LotCode, &b.ExpiryDate,
		&b.Quantity, &b.LocationID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
