package entity

import "time"

// InventoryEntry representa una entrega de merchandising recibida por una unidad de negocio.
// Es inmutable: solo se agregan filas nuevas.
type InventoryEntry struct {
	ID           int64
	BusinessUnit BusinessUnit
	Responsible  string
	Observations string
	Quantities   Quantities
	CreatedAt    time.Time
}
