package usecase

import (
	"context"
	"time"

	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/application/inventory"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// MovementUseCase fachada HTTP del libro de movimientos: delega la escritura en
// el motor transaccional y expone consultas de historial.
type MovementUseCase struct {
	engine *inventory.ApplyMovementUseCase
	repo   repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(engine *inventory.ApplyMovementUseCase, repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{engine: engine, repo: repo}
}

// Apply registra un movimiento de stock a través del motor.
func (uc *MovementUseCase) Apply(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	res, err := uc.engine.Apply(ctx, inventory.MovementInputDTO{
		UserID:                userID,
		BatchID:               in.BatchID,
		Type:                  in.MovementType,
		Quantity:              in.Quantity,
		DestinationLocationID: in.DestinationLocationID,
		Note:                  in.Note,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ApplyMovementResponse{
		Movement: toMovementResponse(&res.Movement),
		Source:   *toBatchResponse(&res.Source, "", "", "", time.Now()),
	}
	if res.Destination != nil {
		dest := toBatchResponse(res.Destination, "", "", "", time.Now())
		out.Destination = dest
	}
	return out, nil
}

// List devuelve el historial global de movimientos, más recientes primero.
func (uc *MovementUseCase) List(page dto.PageRequest) (*dto.MovementListResponse, error) {
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements: toMovementListItems(list),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, nil
}

// ListByBatch devuelve el historial de un lote concreto. Un lote sin
// movimientos produce una lista vacía, no un error.
func (uc *MovementUseCase) ListByBatch(batchID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	list, err := uc.repo.ListByBatch(batchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Movements: toMovementListItems(list),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, nil
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                    m.ID,
		BatchID:               m.BatchID,
		MovementType:          m.MovementType,
		Quantity:              m.Quantity,
		DestinationLocationID: m.DestinationLocationID,
		Note:                  m.Note,
		CreatedAt:             m.CreatedAt,
		CreatedBy:             m.CreatedBy,
	}
}

func toMovementListItems(list []repository.MovementListItem) []dto.MovementListItemResponse {
	out := make([]dto.MovementListItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, dto.MovementListItemResponse{
			MovementResponse:    toMovementResponse(&item.Movement),
			ProductName:         item.ProductName,
			LotCode:             item.LotCode,
			LocationName:        item.LocationName,
			DestinationLocation: item.DestinationLocation,
		})
	}
	return out
}
