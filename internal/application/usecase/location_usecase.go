package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones físicas.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación. El tipo por defecto es OTHER.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.LocationType == "" {
		in.LocationType = entity.LocationTypeOther
	}
	if !entity.ValidLocationType(in.LocationType) {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.Location{
		ID:           uuid.New().String(),
		Name:         in.Name,
		LocationType: in.LocationType,
		Notes:        in.Notes,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// List lista todas las ubicaciones ordenadas por nombre.
func (uc *LocationUseCase) List() ([]dto.LocationResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// Update edita una ubicación (campos opcionales).
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.LocationType != nil {
		if !entity.ValidLocationType(*in.LocationType) {
			return nil, domain.ErrInvalidInput
		}
		location.LocationType = *in.LocationType
	}
	if in.Notes != nil {
		location.Notes = *in.Notes
	}
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete elimina una ubicación. Falla con ErrConflict si tiene lotes.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		LocationType: l.LocationType,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
	}
}
