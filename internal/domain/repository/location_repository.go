package repository

import "github.com/vitastock/vitastock-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List() ([]*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
}
