package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryBucket total de unidades que vencen en una fecha.
type ExpiryBucket struct {
	Date  time.Time
	Total int64
}

// CategoryCount número de productos por categoría.
type CategoryCount struct {
	Name  string
	Total int64
}

// BatchAlertResult lote con stock que requiere atención (vencido o por vencer).
type BatchAlertResult struct {
	BatchID      string
	ProductName  string
	LocationName string
	ExpiryDate   time.Time
	Quantity     int64
}

// LowStockResult producto cuyo stock total está por debajo de su mínimo.
type LowStockResult struct {
	ProductID    string
	ProductName  string
	LocationName string // ubicación por defecto, "-" si no tiene
	TotalStock   int64
	MinStock     int64
}

// OutflowTotals sumas de unidades salidas en un período. SUM() en PostgreSQL
// devuelve NUMERIC, de ahí decimal.
type OutflowTotals struct {
	WasteUnits decimal.Decimal // movimientos WASTE
	OutUnits   decimal.Decimal // movimientos OUT
}

// DashboardRepository define las consultas de lectura para el panel de control.
// Las implementaciones son read-only: nunca mutan lotes ni movimientos.
type DashboardRepository interface {
	// CountExpiredBatches lotes con stock > 0 ya vencidos.
	CountExpiredBatches(ctx context.Context, today time.Time) (int64, error)
	// CountBatchesExpiringWithin lotes con stock > 0 que vencen en [today, today+days].
	CountBatchesExpiringWithin(ctx context.Context, today time.Time, days int) (int64, error)
	// CountLowStockProducts productos cuyo stock total (COALESCE 0) < min_stock.
	CountLowStockProducts(ctx context.Context) (int64, error)
	// GetOutflowTotals sumas de unidades OUT y WASTE en el rango dado.
	GetOutflowTotals(ctx context.Context, from, to time.Time) (OutflowTotals, error)
	// GetExpiryBuckets unidades que vencen por día en [today, today+days],
	// solo lotes con stock > 0. Días sin vencimientos no aparecen.
	GetExpiryBuckets(ctx context.Context, today time.Time, days int) ([]ExpiryBucket, error)
	// GetCategoryDistribution top de categorías por número de productos.
	GetCategoryDistribution(ctx context.Context, limit int) ([]CategoryCount, error)
	// ListExpiredBatches lotes vencidos con stock, más antiguos primero.
	ListExpiredBatches(ctx context.Context, today time.Time, limit int) ([]BatchAlertResult, error)
	// ListExpiringBatches lotes que vencen en [today, today+days], próximos primero.
	ListExpiringBatches(ctx context.Context, today time.Time, days, limit int) ([]BatchAlertResult, error)
	// ListLowStockProducts productos bajo su stock mínimo.
	ListLowStockProducts(ctx context.Context, limit int) ([]LowStockResult, error)
	// ListRecentMovements últimos movimientos con contexto de lote.
	ListRecentMovements(ctx context.Context, limit int) ([]MovementListItem, error)
}
