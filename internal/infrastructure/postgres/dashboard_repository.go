package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only del panel de control sobre PostgreSQL.
// Nunca muta lotes ni movimientos.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del panel.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountExpiredBatches lotes con stock > 0 ya vencidos.
func (r *DashboardRepo) CountExpiredBatches(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM batches WHERE quantity > 0 AND expiry_date < $1`,
		today).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expired batches: %w", err)
	}
	return count, nil
}

// CountBatchesExpiringWithin lotes con stock > 0 que vencen en [today, today+days].
func (r *DashboardRepo) CountBatchesExpiringWithin(ctx context.Context, today time.Time, days int) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM batches
		 WHERE quantity > 0 AND expiry_date >= $1 AND expiry_date <= $2`,
		today, today.AddDate(0, 0, days)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expiring batches: %w", err)
	}
	return count, nil
}

// CountLowStockProducts productos cuyo stock total (0 si no tiene lotes) está
// por debajo de su mínimo.
func (r *DashboardRepo) CountLowStockProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM (
			SELECT p.id
			FROM products p
			LEFT JOIN batches b ON b.product_id = p.id
			GROUP BY p.id, p.min_stock
			HAVING COALESCE(SUM(b.quantity), 0) < p.min_stock
		) low`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock products: %w", err)
	}
	return count, nil
}

// GetOutflowTotals sumas de unidades OUT y WASTE en [from, to). SUM() llega
// como NUMERIC, de ahí decimal.
func (r *DashboardRepo) GetOutflowTotals(ctx context.Context, from, to time.Time) (repository.OutflowTotals, error) {
	var totals repository.OutflowTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity) FILTER (WHERE movement_type = $3), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE movement_type = $4), 0)
		FROM movements
		WHERE created_at >= $1 AND created_at < $2
		  AND movement_type IN ($3, $4)`,
		from, to, entity.MovementTypeWASTE, entity.MovementTypeOUT,
	).Scan(&totals.WasteUnits, &totals.OutUnits)
	if err != nil {
		return repository.OutflowTotals{}, fmt.Errorf("get outflow totals: %w", err)
	}
	return totals, nil
}

// GetExpiryBuckets unidades que vencen por día en [today, today+days], solo
// lotes con stock > 0. Los días sin vencimientos no aparecen en el resultado.
func (r *DashboardRepo) GetExpiryBuckets(ctx context.Context, today time.Time, days int) ([]repository.ExpiryBucket, error) {
	rows, err := r.q.Query(ctx, `
		SELECT expiry_date, SUM(quantity)::bigint
		FROM batches
		WHERE quantity > 0 AND expiry_date >= $1 AND expiry_date <= $2
		GROUP BY expiry_date
		ORDER BY expiry_date`,
		today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("get expiry buckets: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpiryBucket
	for rows.Next() {
		var b repository.ExpiryBucket
		if err := rows.Scan(&b.Date, &b.Total); err != nil {
			return nil, fmt.Errorf("scan expiry bucket: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetCategoryDistribution top de categorías por número de productos.
func (r *DashboardRepo) GetCategoryDistribution(ctx context.Context, limit int) ([]repository.CategoryCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.name, COUNT(p.id)::bigint AS total
		FROM categories c
		JOIN products p ON p.category_id = c.id
		GROUP BY c.name
		ORDER BY total DESC, c.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("get category distribution: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryCount
	for rows.Next() {
		var c repository.CategoryCount
		if err := rows.Scan(&c.Name, &c.Total); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const batchAlertQuery = `
	SELECT b.id, p.name, l.name, b.expiry_date, b.quantity
	FROM batches b
	JOIN products p ON p.id = b.product_id
	JOIN locations l ON l.id = b.location_id
	WHERE b.quantity > 0`

// ListExpiredBatches lotes vencidos con stock, los más antiguos primero.
func (r *DashboardRepo) ListExpiredBatches(ctx context.Context, today time.Time, limit int) ([]repository.BatchAlertResult, error) {
	query := batchAlertQuery + ` AND b.expiry_date < $1 ORDER BY b.expiry_date LIMIT $2`
	rows, err := r.q.Query(ctx, query, today, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired batches: %w", err)
	}
	defer rows.Close()
	return scanBatchAlerts(rows)
}

// ListExpiringBatches lotes que vencen en [today, today+days], los más próximos primero.
func (r *DashboardRepo) ListExpiringBatches(ctx context.Context, today time.Time, days, limit int) ([]repository.BatchAlertResult, error) {
	query := batchAlertQuery + ` AND b.expiry_date >= $1 AND b.expiry_date <= $2 ORDER BY b.expiry_date LIMIT $3`
	rows, err := r.q.Query(ctx, query, today, today.AddDate(0, 0, days), limit)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	return scanBatchAlerts(rows)
}

// ListLowStockProducts productos bajo su stock mínimo, los más faltantes primero.
func (r *DashboardRepo) ListLowStockProducts(ctx context.Context, limit int) ([]repository.LowStockResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(l.name, '-'),
		       COALESCE(SUM(b.quantity), 0)::bigint AS total_stock, p.min_stock
		FROM products p
		LEFT JOIN locations l ON l.id = p.default_location_id
		LEFT JOIN batches b ON b.product_id = p.id
		GROUP BY p.id, p.name, l.name, p.min_stock
		HAVING COALESCE(SUM(b.quantity), 0) < p.min_stock
		ORDER BY p.min_stock - COALESCE(SUM(b.quantity), 0) DESC, p.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockResult
	for rows.Next() {
		var p repository.LowStockResult
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.LocationName, &p.TotalStock, &p.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListRecentMovements últimos movimientos con contexto de lote.
func (r *DashboardRepo) ListRecentMovements(ctx context.Context, limit int) ([]repository.MovementListItem, error) {
	rows, err := r.q.Query(ctx, movementListQuery+`
	ORDER BY m.created_at DESC
	LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	return scanMovementItems(rows)
}

func scanBatchAlerts(rows pgx.Rows) ([]repository.BatchAlertResult, error) {
	var out []repository.BatchAlertResult
	for rows.Next() {
		var b repository.BatchAlertResult
		if err := rows.Scan(&b.BatchID, &b.ProductName, &b.LocationName, &b.ExpiryDate, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan batch alert: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
