package entity

import "time"

// Ventana de aviso de vencimiento próximo.
const ExpiryWarningDays = 7

// Etiquetas de estado derivadas de la fecha de vencimiento.
const (
	BatchStatusExpired = "expired"
	BatchStatusWarning = "warning"
	BatchStatusOK      = "ok"
)

// Batch representa un lote: cantidad de un producto, con un código de lote y una
// fecha de vencimiento, almacenada en una ubicación. Único por (product, lot_code, location):
// el mismo lote en dos ubicaciones distintas son dos Batch distintos.
//
// Invariante: Quantity >= 0 siempre. Solo el motor de movimientos
// (inventory.ApplyMovementUseCase) escribe Quantity.
type Batch struct {
	ID         string
	ProductID  string
	LotCode    string
	ExpiryDate time.Time // solo fecha, hora 00:00 UTC
	Quantity   int64
	LocationID string
	CreatedAt  time.Time
}

// IsExpired indica si el lote está vencido respecto a la fecha dada.
func (b *Batch) IsExpired(today time.Time) bool {
	return dateOnly(b.ExpiryDate).Before(dateOnly(today))
}

// ExpiresSoon indica si el lote vence dentro de [today, today+7d].
func (b *Batch) ExpiresSoon(today time.Time) bool {
	d := dateOnly(today)
	exp := dateOnly(b.ExpiryDate)
	return !exp.Before(d) && !exp.After(d.AddDate(0, 0, ExpiryWarningDays))
}

// StatusLabel devuelve expired, warning u ok. Vencido tiene prioridad sobre warning.
func (b *Batch) StatusLabel(today time.Time) string {
	if b.IsExpired(today) {
		return BatchStatusExpired
	}
	if b.ExpiresSoon(today) {
		return BatchStatusWarning
	}
	return BatchStatusOK
}

// dateOnly trunca a medianoche UTC para comparar fechas sin componente horario.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
