package entity

import "time"

// Confirmation registro de lo efectivamente aprobado para una solicitud.
// Hay exactamente una por solicitud confirmada y nunca se modifica.
type Confirmation struct {
	ID           int64
	RequestID    int64
	BusinessUnit BusinessUnit
	Confirmer    string
	Observations string
	Quantities   Quantities
	CreatedAt    time.Time
}
