package dto

import "time"

// CreateBatchRequest alta manual de lote. La cantidad inicial se registra como
// un movimiento IN, no como un write directo.
type CreateBatchRequest struct {
	ProductID  string `json:"product_id" validate:"required,uuid4"`
	LotCode    string `json:"lot_code" validate:"required,max=100"`
	ExpiryDate string `json:"expiry_date" validate:"required"` // YYYY-MM-DD
	Quantity   int64  `json:"quantity" validate:"min=0"`
	LocationID string `json:"location_id" validate:"required,uuid4"`
}

// UpdateBatchRequest edición de lote. La cantidad NO es editable: solo el motor
// de movimientos la escribe.
type UpdateBatchRequest struct {
	LotCode    *string `json:"lot_code" validate:"omitempty,max=100"`
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
	LocationID *string `json:"location_id" validate:"omitempty,uuid4"`
}

// BatchResponse lote en respuestas, con estado de vencimiento derivado.
type BatchResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	LotCode      string    `json:"lot_code"`
	ExpiryDate   string    `json:"expiry_date"` // YYYY-MM-DD
	Quantity     int64     `json:"quantity"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_name,omitempty"`
	IsExpired    bool      `json:"is_expired"`
	ExpiresSoon  bool      `json:"expires_soon"`
	StatusLabel  string    `json:"status_label"` // expired | warning | ok
	CreatedAt    time.Time `json:"created_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
