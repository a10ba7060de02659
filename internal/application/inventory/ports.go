package inventory

import (
	"context"

	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o se confirman todos los writes (lotes + movimiento) o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		movRepo repository.MovementRepository,
	) error) error
}
