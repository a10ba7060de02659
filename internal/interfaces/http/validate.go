package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/vitastock/vitastock-api/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate parsea el body JSON y valida los tags `validate` del DTO.
// Si falla escribe la respuesta 400 y devuelve false; el handler solo retorna nil.
func parseAndValidate(c *fiber.Ctx, in any) bool {
	if err := c.BodyParser(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		return false
	}
	return true
}
