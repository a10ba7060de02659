package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
)

func TestMovement_Validate(t *testing.T) {
	cases := []struct {
		nombre  string
		mov     entity.Movement
		wantErr error
	}{
		{
			"entrada válida",
			entity.Movement{MovementType: entity.MovementTypeIN, Quantity: 1},
			nil,
		},
		{
			"cantidad cero",
			entity.Movement{MovementType: entity.MovementTypeOUT, Quantity: 0},
			domain.ErrInvalidQuantity,
		},
		{
			"cantidad negativa",
			entity.Movement{MovementType: entity.MovementTypeIN, Quantity: -5},
			domain.ErrInvalidQuantity,
		},
		{
			"tipo desconocido",
			entity.Movement{MovementType: "VENTA", Quantity: 3},
			domain.ErrInvalidInput,
		},
		{
			"traslado sin destino",
			entity.Movement{MovementType: entity.MovementTypeTRANSFER, Quantity: 3},
			domain.ErrInvalidDestination,
		},
		{
			"traslado con destino",
			entity.Movement{MovementType: entity.MovementTypeTRANSFER, Quantity: 3, DestinationLocationID: "loc-1"},
			nil,
		},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			err := c.mov.Validate()
			if c.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.wantErr)
			}
		})
	}
}
