package repository

import (
	"time"

	"github.com/vitastock/vitastock-api/internal/domain/entity"
)

// BatchListItem lote con los nombres de producto y ubicación para listados.
type BatchListItem struct {
	Batch        entity.Batch
	ProductName  string
	CategoryName string
	LocationName string
}

// BatchFilter filtros del listado de lotes. Query busca por nombre de producto,
// código de lote y nombre de ubicación (ILIKE). Orden: fecha de vencimiento asc.
type BatchFilter struct {
	Query  string
	Limit  int
	Offset int
}

// BatchRepository define el puerto de persistencia para lotes.
//
// Quantity solo se escribe vía SetQuantity y únicamente desde el motor de
// movimientos dentro de una transacción; ningún otro componente muta stock.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate relee el lote bloqueando la fila (SELECT ... FOR UPDATE).
	// Obligatorio antes de mutar: no confiar en lecturas previas al lock.
	GetForUpdate(id string) (*entity.Batch, error)
	// GetOrCreateForUpdate resuelve el lote destino de un traslado: devuelve el
	// lote existente para (product, lot_code, location) con la fila bloqueada,
	// o crea uno nuevo con cantidad 0 y el vencimiento dado. Solo lo usa el
	// motor de movimientos.
	GetOrCreateForUpdate(productID, lotCode string, expiryDate time.Time, locationID string) (*entity.Batch, error)
	// SetQuantity persiste la cantidad; el caller ya validó quantity >= 0.
	SetQuantity(id string, quantity int64) error
	Update(batch *entity.Batch) error
	Delete(id string) error
	List(filter BatchFilter) ([]BatchListItem, error)
	ListByProduct(productID string) ([]*entity.Batch, error)
}
