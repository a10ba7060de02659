package dto

import "time"

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateCategoryRequest edición de categoría.
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ── Ubicaciones ───────────────────────────────────────────────────────────────

// CreateLocationRequest alta de ubicación.
type CreateLocationRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	LocationType string `json:"location_type" validate:"required"`
	Notes        string `json:"notes"`
}

// UpdateLocationRequest edición de ubicación.
type UpdateLocationRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	LocationType *string `json:"location_type"`
	Notes        *string `json:"notes"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LocationType string    `json:"location_type"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
