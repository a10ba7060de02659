package repository

import "github.com/vitastock/vitastock-api/internal/domain/entity"

// ProductWithStock producto con el stock total agregado de sus lotes.
type ProductWithStock struct {
	Product    entity.Product
	TotalStock int64
}

// ProductFilter filtros del listado de productos. Query busca por nombre de
// producto, de categoría y de ubicación por defecto (ILIKE).
type ProductFilter struct {
	Query      string
	CategoryID string
	LocationID string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByNameAndCategory(name, categoryID string) (*entity.Product, error)
	List(filter ProductFilter) ([]ProductWithStock, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
