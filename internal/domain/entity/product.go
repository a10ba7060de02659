package entity

import "time"

// Unidades de medida de productos.
const (
	UnitUnit     = "unit" // unidad
	UnitKilogram = "kg"
	UnitLiter    = "lt"
	UnitCC       = "cc"
	UnitGram     = "gr"
)

// ValidUnit indica si la unidad es una de las conocidas.
func ValidUnit(u string) bool {
	switch u {
	case UnitUnit, UnitKilogram, UnitLiter, UnitCC, UnitGram:
		return true
	}
	return false
}

// Product representa un producto del catálogo. No almacena stock: el stock vive
// en los lotes (Batch) y solo lo muta el motor de movimientos.
// Único por (name, category).
type Product struct {
	ID                string
	Name              string
	CategoryID        string
	Unit              string // unit, kg, lt, cc, gr
	MinStock          int64  // umbral de stock bajo, >= 1
	DefaultLocationID string // vacío si no tiene ubicación por defecto
	CreatedAt         time.Time
}
