package entity

import (
	"time"

	"github.com/vitastock/vitastock-api/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeWASTE    = "WASTE"    // merma
	MovementTypeADJUST   = "ADJUST"   // corrección absoluta: fija la cantidad del lote en Quantity
	MovementTypeTRANSFER = "TRANSFER" // traslado a otra ubicación
)

// ValidMovementType indica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeWASTE,
		MovementTypeADJUST, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Movement es una entrada inmutable del libro de movimientos. Una vez
// confirmada nunca se edita ni se elimina; las correcciones se expresan con un
// movimiento nuevo compensatorio.
type Movement struct {
	ID                    string
	BatchID               string
	MovementType          string
	Quantity              int64  // siempre >= 1
	DestinationLocationID string // solo TRANSFER; vacío en el resto
	Note                  string
	CreatedAt             time.Time
	CreatedBy             string // UserID
}

// Validate aplica la validación estructural que no requiere estado vivo del lote.
// La suficiencia de stock NO se comprueba aquí: eso exige el lock de fila que
// toma el motor (evita la carrera check-then-apply).
func (m *Movement) Validate() error {
	if !ValidMovementType(m.MovementType) {
		return domain.ErrInvalidInput
	}
	if m.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if m.MovementType == MovementTypeTRANSFER && m.DestinationLocationID == "" {
		return domain.ErrInvalidDestination
	}
	return nil
}
