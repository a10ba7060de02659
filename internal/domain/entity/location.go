package entity

import "time"

// Tipos de ubicación física.
const (
	LocationTypeShelf     = "SHELF"     // estante
	LocationTypeBox       = "BOX"       // caja
	LocationTypeFurniture = "FURNITURE" // mueble
	LocationTypeFridge    = "FRIDGE"    // refrigerador
	LocationTypeFreezer   = "FREEZER"   // congeladora
	LocationTypeOther     = "OTHER"     // otro
)

// ValidLocationType indica si el tipo de ubicación es uno de los conocidos.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeShelf, LocationTypeBox, LocationTypeFurniture,
		LocationTypeFridge, LocationTypeFreezer, LocationTypeOther:
		return true
	}
	return false
}

// Location representa una ubicación física de almacenamiento (tabla de dimensión pura).
type Location struct {
	ID           string
	Name         string
	LocationType string // SHELF, BOX, FURNITURE, FRIDGE, FREEZER, OTHER
	Notes        string
	CreatedAt    time.Time
}
