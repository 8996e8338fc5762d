package entity

import "time"

// Location representa una ubicación física de inventario (bodega, estantería, tienda).
// Puede desactivarse pero no borrarse una vez referenciada por un movimiento
// (integridad referencial en la capa de almacenamiento).
type Location struct {
	ID          string
	Code        string // único
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
