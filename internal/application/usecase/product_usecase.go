package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca aquí:
// vive en los lotes y solo lo muta el motor de movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, locationRepo: locationRepo}
}

// Create crea un producto. Único por (name, category); min_stock por defecto 1.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.DefaultLocationID != "" {
		location, err := uc.locationRepo.GetByID(in.DefaultLocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.Unit == "" {
		in.Unit = entity.UnitUnit
	}
	if !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock <= 0 {
		in.MinStock = 1
	}
	existing, _ := uc.repo.GetByNameAndCategory(in.Name, in.CategoryID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		CategoryID:        in.CategoryID,
		Unit:              in.Unit,
		MinStock:          in.MinStock,
		DefaultLocationID: in.DefaultLocationID,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto por ID (sin stock agregado).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product, 0), nil
}

// List lista productos con stock total, filtrables por búsqueda libre,
// categoría y ubicación por defecto.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, item := range list {
		out = append(out, *toProductResponse(&item.Product, item.TotalStock))
	}
	return &dto.ProductListResponse{
		Products: out,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}

// Update edita un producto (campos opcionales). min_stock y category son
// mutables; la identidad (ID) no.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if *in.MinStock < 1 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.DefaultLocationID != nil {
		if *in.DefaultLocationID != "" {
			location, err := uc.locationRepo.GetByID(*in.DefaultLocationID)
			if err != nil {
				return nil, err
			}
			if location == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.DefaultLocationID = *in.DefaultLocationID
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// Delete elimina un producto y, en cascada, sus lotes y movimientos.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product, totalStock int64) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		CategoryID:        p.CategoryID,
		Unit:              p.Unit,
		MinStock:          p.MinStock,
		DefaultLocationID: p.DefaultLocationID,
		TotalStock:        totalStock,
		LowStock:          totalStock < p.MinStock,
		CreatedAt:         p.CreatedAt,
	}
}
