package repository

import "github.com/vitastock/vitastock-api/internal/domain/entity"

// MovementListItem movimiento con el contexto del lote para listados.
type MovementListItem struct {
	Movement            entity.Movement
	ProductName         string
	LotCode             string
	LocationName        string
	DestinationLocation string // vacío si no es TRANSFER
}

// MovementRepository define el puerto del libro de movimientos (append-only).
// No expone Update ni Delete: un movimiento confirmado es inmutable.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(limit, offset int) ([]MovementListItem, error)
	ListByBatch(batchID string, limit, offset int) ([]MovementListItem, error)
	CountByBatch(batchID string) (int64, error)
}
