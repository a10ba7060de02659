package repository

import "github.com/vitastock/vitastock-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para cuentas de usuario.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// List devuelve todas las cuentas, activas primero y luego por email.
	List() ([]*entity.User, error)
	UpdateStatus(id, status string) error
}
