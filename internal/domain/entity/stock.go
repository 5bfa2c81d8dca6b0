package entity

import "time"

// StockSummaryID id fijo de la fila de resumen de cada unidad.
const StockSummaryID = 1

// StockSummary stock derivado de una unidad (inventario − confirmado). No es estado autoritativo.
type StockSummary struct {
	ID           int
	BusinessUnit BusinessUnit
	Quantities   Quantities
	UpdatedAt    time.Time
}
