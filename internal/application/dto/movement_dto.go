package dto

import "time"

// ApplyMovementRequest intención de movimiento enviada por el caller.
// destination_location_id solo aplica (y es obligatorio) para TRANSFER.
type ApplyMovementRequest struct {
	BatchID               string `json:"batch_id" validate:"required,uuid4"`
	MovementType          string `json:"movement_type" validate:"required,oneof=IN OUT WASTE ADJUST TRANSFER"`
	Quantity              int64  `json:"quantity" validate:"required,min=1"`
	DestinationLocationID string `json:"destination_location_id" validate:"omitempty,uuid4"`
	Note                  string `json:"note"`
}

// MovementResponse movimiento confirmado.
type MovementResponse struct {
	ID                    string    `json:"id"`
	BatchID               string    `json:"batch_id"`
	MovementType          string    `json:"movement_type"`
	Quantity              int64     `json:"quantity"`
	DestinationLocationID string    `json:"destination_location_id,omitempty"`
	Note                  string    `json:"note,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	CreatedBy             string    `json:"created_by,omitempty"`
}

// MovementListItemResponse movimiento con contexto de lote para listados.
type MovementListItemResponse struct {
	MovementResponse
	ProductName         string `json:"product_name"`
	LotCode             string `json:"lot_code"`
	LocationName        string `json:"location_name"`
	DestinationLocation string `json:"destination_location,omitempty"`
}

// ApplyMovementResponse resultado del motor: movimiento confirmado y snapshots
// de los lotes actualizados (destination solo en TRANSFER).
type ApplyMovementResponse struct {
	Movement    MovementResponse `json:"movement"`
	Source      BatchResponse    `json:"source_batch"`
	Destination *BatchResponse   `json:"destination_batch,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementListItemResponse `json:"movements"`
	Limit     int                        `json:"limit"`
	Offset    int                        `json:"offset"`
}
