package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/kossodo/merch-api/internal/domain"
)

// Estados de una solicitud. pending -> confirmed es la única transición.
const (
	RequestStatusPending   = "pending"
	RequestStatusConfirmed = "confirmed"
)

// IsValidRequestStatus indica si s es un estado conocido.
func IsValidRequestStatus(s string) bool {
	return s == RequestStatusPending || s == RequestStatusConfirmed
}

// Request solicitud de packs de merchandising para una visita a cliente.
type Request struct {
	ID           int64
	Requester    string
	BusinessUnit BusinessUnit
	TaxID        string // RUC del cliente
	VisitDate    string
	PackCount    int64
	// Products unidades por pack de cada producto.
	Products    Quantities
	Catalogs    string
	Status      string
	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

// IsPending indica si la solicitud todavía puede confirmarse.
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// RequestedTotals cantidades totales pedidas: packs × unidades por pack.
// Falla si algún factor es negativo o el producto no cabe en int64.
func (r *Request) RequestedTotals() (Quantities, error) {
	if r.PackCount < 0 {
		return nil, fmt.Errorf("%w: cantidad_packs negativa", domain.ErrInvalidInput)
	}
	out := make(Quantities, len(r.Products))
	for k, perPack := range r.Products {
		if perPack < 0 {
			return nil, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, k)
		}
		if perPack != 0 && r.PackCount > math.MaxInt64/perPack {
			return nil, fmt.Errorf("%w: total de %s desborda (%d packs × %d)", domain.ErrInvalidInput, k, r.PackCount, perPack)
		}
		out[k] = perPack * r.PackCount
	}
	return out, nil
}
