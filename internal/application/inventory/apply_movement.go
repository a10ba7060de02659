package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// ApplyMovementUseCase es la única autoridad que convierte una intención de
// movimiento en mutaciones de lotes, de forma transaccional: bloqueo de fila
// (SELECT FOR UPDATE) sobre el lote origen —y el destino en TRANSFER— y
// Commit/Rollback.
//
// Semántica por tipo:
//
//	IN        quantity += n
//	OUT/WASTE requiere n <= quantity; quantity -= n (sin clamping: el sobregiro
//	          se rechaza con ErrInsufficientStock para mantener el libro reversible)
//	ADJUST    corrección absoluta: quantity = n
//	TRANSFER  resta n del lote origen y suma n al lote del mismo producto/lote/
//	          vencimiento en la ubicación destino, creándolo con cantidad 0 si
//	          no existe; ambos writes en la misma transacción
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
}

// NewApplyMovementUseCase construye el motor de movimientos.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
	}
}

// MovementInputDTO intención de movimiento construida por el caller.
// DestinationLocationID solo aplica (y es obligatorio) para TRANSFER.
type MovementInputDTO struct {
	UserID                string
	BatchID               string
	Type                  string
	Quantity              int64
	DestinationLocationID string
	Note                  string
}

// MovementResultDTO movimiento confirmado y snapshots de los lotes actualizados.
// Destination es nil salvo en TRANSFER.
type MovementResultDTO struct {
	Movement    entity.Movement
	Source      entity.Batch
	Destination *entity.Batch
}

// Apply valida la intención, inicia la transacción, relee el lote origen bajo
// lock, aplica el delta según tipo y persiste lote(s) + movimiento como unidad
// atómica. Si cualquier paso falla, nada queda escrito.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInputDTO) (*MovementResultDTO, error) {
	mov := entity.Movement{
		ID:                    uuid.New().String(),
		BatchID:               input.BatchID,
		MovementType:          input.Type,
		Quantity:              input.Quantity,
		DestinationLocationID: input.DestinationLocationID,
		Note:                  input.Note,
		CreatedBy:             input.UserID,
	}

	// Validación estructural: barata y sin locks. Falla antes de tocar la BD.
	if err := mov.Validate(); err != nil {
		return nil, err
	}
	if input.BatchID == "" {
		return nil, domain.ErrNotFound
	}

	// Pre-chequeos de existencia fuera de la transacción (fast-fail). La
	// suficiencia de stock y la ubicación del origen se deciden bajo lock.
	if mov.MovementType == entity.MovementTypeTRANSFER {
		loc, err := uc.locationRepo.GetByID(input.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}
	pre, err := uc.batchRepo.GetByID(input.BatchID)
	if err != nil {
		return nil, err
	}
	if pre == nil {
		return nil, domain.ErrNotFound
	}

	var result *MovementResultDTO
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		movRepo repository.MovementRepository,
	) error {
		// Releer bajo lock: nunca confiar en cantidades leídas antes de
		// adquirirlo (dos OUT concurrentes sobre el mismo lote no deben pasar
		// ambos el chequeo de suficiencia con un valor viejo).
		src, err := batchRepo.GetForUpdate(input.BatchID)
		if err != nil {
			return err
		}
		if src == nil {
			return domain.ErrNotFound
		}

		var dst *entity.Batch
		switch mov.MovementType {
		case entity.MovementTypeIN:
			src.Quantity += mov.Quantity

		case entity.MovementTypeOUT, entity.MovementTypeWASTE:
			if mov.Quantity > src.Quantity {
				return domain.ErrInsufficientStock
			}
			src.Quantity -= mov.Quantity

		case entity.MovementTypeADJUST:
			// Corrección absoluta: fija la cantidad en el valor indicado.
			src.Quantity = mov.Quantity

		case entity.MovementTypeTRANSFER:
			if input.DestinationLocationID == src.LocationID {
				return domain.ErrInvalidDestination
			}
			if mov.Quantity > src.Quantity {
				return domain.ErrInsufficientStock
			}
			// Mismo producto, lote y vencimiento; solo cambia la ubicación.
			dst, err = batchRepo.GetOrCreateForUpdate(
				src.ProductID, src.LotCode, src.ExpiryDate, input.DestinationLocationID,
			)
			if err != nil {
				return err
			}
			src.Quantity -= mov.Quantity
			dst.Quantity += mov.Quantity
			if err := batchRepo.SetQuantity(dst.ID, dst.Quantity); err != nil {
				return err
			}
		}

		if err := batchRepo.SetQuantity(src.ID, src.Quantity); err != nil {
			return err
		}

		mov.CreatedAt = time.Now()
		if err := movRepo.Create(&mov); err != nil {
			return err
		}

		result = &MovementResultDTO{Movement: mov, Source: *src, Destination: dst}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
