package entity

import "time"

// Product representa un artículo almacenable. Identidad inmutable (ID, SKU);
// campos descriptivos mutables.
type Product struct {
	ID        string
	SKU       string // único, asignado por humanos
	Name      string
	Barcode   string // opcional
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
