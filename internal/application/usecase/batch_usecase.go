package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/application/inventory"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// BatchUseCase casos de uso para lotes. La cantidad de un lote jamás se escribe
// aquí: el alta con cantidad inicial delega en el motor de movimientos (IN), y
// la edición no admite cantidad.
type BatchUseCase struct {
	repo         repository.BatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	movementRepo repository.MovementRepository
	engine       *inventory.ApplyMovementUseCase
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	repo repository.BatchRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
	engine *inventory.ApplyMovementUseCase,
) *BatchUseCase {
	return &BatchUseCase{
		repo:         repo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		engine:       engine,
	}
}

// Create da de alta un lote manual. Nace con cantidad 0; si la petición trae
// cantidad inicial, se registra como un movimiento IN para que el libro quede
// completo desde el primer día.
func (uc *BatchUseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	expiry, err := time.ParseInLocation(dateLayout, in.ExpiryDate, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	batch := &entity.Batch{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		LotCode:    in.LotCode,
		ExpiryDate: expiry,
		Quantity:   0,
		LocationID: in.LocationID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(batch); err != nil {
		return nil, err // ErrDuplicate si (product, lot_code, location) ya existe
	}

	if in.Quantity > 0 {
		res, err := uc.engine.Apply(ctx, inventory.MovementInputDTO{
			UserID:   userID,
			BatchID:  batch.ID,
			Type:     entity.MovementTypeIN,
			Quantity: in.Quantity,
			Note:     "alta de lote",
		})
		if err != nil {
			return nil, err
		}
		batch = &res.Source
	}
	return toBatchResponse(batch, "", "", "", time.Now()), nil
}

// GetByID obtiene un lote con su estado de vencimiento derivado.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch, "", "", "", time.Now()), nil
}

// List lista lotes con nombres de producto/categoría/ubicación, ordenados por
// vencimiento ascendente y filtrables por búsqueda libre.
func (uc *BatchUseCase) List(filter repository.BatchFilter) (*dto.BatchListResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	out := make([]dto.BatchResponse, 0, len(list))
	for _, item := range list {
		out = append(out, *toBatchResponse(&item.Batch, item.ProductName, item.CategoryName, item.LocationName, today))
	}
	return &dto.BatchListResponse{Batches: out, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Update edita código de lote, vencimiento o ubicación. La cantidad no es
// editable por esta vía.
func (uc *BatchUseCase) Update(id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if in.LotCode != nil {
		batch.LotCode = *in.LotCode
	}
	if in.ExpiryDate != nil {
		expiry, err := time.ParseInLocation(dateLayout, *in.ExpiryDate, time.UTC)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		batch.ExpiryDate = expiry
	}
	if in.LocationID != nil {
		location, err := uc.locationRepo.GetByID(*in.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrNotFound
		}
		batch.LocationID = *in.LocationID
	}
	if err := uc.repo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch, "", "", "", time.Now()), nil
}

// Delete elimina un lote solo si no tiene movimientos: el libro es inmutable y
// borrar un lote con historial lo dejaría inconsistente.
func (uc *BatchUseCase) Delete(id string) error {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movementRepo.CountByBatch(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrBatchHasMovements
	}
	return uc.repo.Delete(id)
}

// ListByProduct devuelve los lotes de un producto (para el detalle de producto).
func (uc *BatchUseCase) ListByProduct(productID string) ([]dto.BatchResponse, error) {
	list, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBatchResponse(b, "", "", "", today))
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch, productName, categoryName, locationName string, today time.Time) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		ProductName:  productName,
		CategoryName: categoryName,
		LotCode:      b.LotCode,
		ExpiryDate:   b.ExpiryDate.Format(dateLayout),
		Quantity:     b.Quantity,
		LocationID:   b.LocationID,
		LocationName: locationName,
		IsExpired:    b.IsExpired(today),
		ExpiresSoon:  b.ExpiresSoon(today),
		StatusLabel:  b.StatusLabel(today),
		CreatedAt:    b.CreatedAt,
	}
}
