package usecase

import (
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// AccountUseCase administración de cuentas, reservada a administradores.
type AccountUseCase struct {
	repo repository.UserRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.UserRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// List lista todas las cuentas.
func (uc *AccountUseCase) List() (*dto.UserListResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return &dto.UserListResponse{Users: out}, nil
}

// SetActive activa o desactiva una cuenta. Un administrador no puede
// desactivarse a sí mismo.
func (uc *AccountUseCase) SetActive(actorID, targetID string, active bool) (*dto.UserResponse, error) {
	if !active && actorID == targetID {
		return nil, domain.ErrConflict
	}
	user, err := uc.repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	status := entity.UserStatusActive
	if !active {
		status = entity.UserStatusInactive
	}
	if err := uc.repo.UpdateStatus(targetID, status); err != nil {
		return nil, err
	}
	user.Status = status
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
