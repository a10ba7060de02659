package dto

import "time"

// CreateProductRequest alta de producto. El stock no se indica aquí: nace en 0
// y se mueve vía lotes y movimientos.
type CreateProductRequest struct {
	Name              string `json:"name" validate:"required,max=150"`
	CategoryID        string `json:"category_id" validate:"required,uuid4"`
	Unit              string `json:"unit"`
	MinStock          int64  `json:"min_stock" validate:"omitempty,min=1"`
	DefaultLocationID string `json:"default_location_id" validate:"omitempty,uuid4"`
}

// UpdateProductRequest edición parcial de producto.
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=150"`
	CategoryID        *string `json:"category_id" validate:"omitempty,uuid4"`
	Unit              *string `json:"unit"`
	MinStock          *int64  `json:"min_stock" validate:"omitempty,min=1"`
	DefaultLocationID *string `json:"default_location_id"`
}

// ProductResponse producto en respuestas, con el stock total de sus lotes.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CategoryID        string    `json:"category_id"`
	Unit              string    `json:"unit"`
	MinStock          int64     `json:"min_stock"`
	DefaultLocationID string    `json:"default_location_id,omitempty"`
	TotalStock        int64     `json:"total_stock"`
	LowStock          bool      `json:"low_stock"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
