package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitastock/vitastock-api/internal/domain/entity"
)

var hoy = time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)

func batchVence(dias int) *entity.Batch {
	return &entity.Batch{ExpiryDate: hoy.AddDate(0, 0, dias)}
}

func TestBatch_StatusLabel(t *testing.T) {
	cases := []struct {
		nombre string
		dias   int
		want   string
	}{
		{"vencido ayer", -1, entity.BatchStatusExpired},
		{"vencido hace un mes", -30, entity.BatchStatusExpired},
		{"vence hoy", 0, entity.BatchStatusWarning},
		{"vence en el borde de la ventana", 7, entity.BatchStatusWarning},
		{"vence justo después de la ventana", 8, entity.BatchStatusOK},
		{"vence en meses", 90, entity.BatchStatusOK},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.want, batchVence(c.dias).StatusLabel(hoy))
		})
	}
}

// El componente horario no debe afectar la comparación de fechas: un lote que
// vence hoy a las 00:00 no está vencido aunque ya sean las 10:30.
func TestBatch_ComparaSoloFechas(t *testing.T) {
	b := &entity.Batch{ExpiryDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)}
	assert.False(t, b.IsExpired(hoy))
	assert.True(t, b.ExpiresSoon(hoy))
}

func TestBatch_ExpiredTienePrioridadSobreWarning(t *testing.T) {
	// Un lote vencido ayer también está "cerca" en términos absolutos, pero la
	// etiqueta debe ser expired.
	assert.Equal(t, entity.BatchStatusExpired, batchVence(-1).StatusLabel(hoy))
}
