package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vitastock/vitastock-api/internal/application/dto"
	"github.com/vitastock/vitastock-api/internal/application/usecase"
	"github.com/vitastock/vitastock-api/internal/domain"
)

// AccountHandler administración de cuentas (solo admin).
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/activate [post]
func (h *AccountHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// Deactivate godoc
// @Summary      Desactivar cuenta
// @Description  Un administrador no puede desactivar su propia cuenta.
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/deactivate [post]
func (h *AccountHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *AccountHandler) setActive(c *fiber.Ctx, active bool) error {
	out, err := h.uc.SetActive(GetUserID(c), c.Params("id"), active)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuenta no encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SELF_DEACTIVATE", Message: "no puede desactivar su propia cuenta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
