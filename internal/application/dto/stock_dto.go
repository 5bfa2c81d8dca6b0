package dto

import (
	"time"

	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
)

// StockResponse fila de resumen de stock: id fijo, grupo, timestamp y una clave por producto.
type StockResponse struct {
	ID         int
	Group      string
	Quantities map[string]int64
	UpdatedAt  time.Time
}

// MarshalJSON implementa json.Marshaler.
func (r StockResponse) MarshalJSON() ([]byte, error) {
	return flatten(map[string]any{
		"id":        r.ID,
		"grupo":     r.Group,
		"timestamp": r.UpdatedAt,
	}, r.Quantities)
}

// UnmarshalJSON permite leer la forma plana.
func (r *StockResponse) UnmarshalJSON(b []byte) error {
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	out := StockResponse{Quantities: map[string]int64{}}
	for key, raw := range fields {
		if !domaininv.IsProductKey(key) {
			continue
		}
		if out.Quantities[key], err = parseInt(raw); err != nil {
			return err
		}
	}
	id, err := parseInt(fields["id"])
	if err != nil {
		return err
	}
	out.ID = int(id)
	out.Group, _ = stringField(fields, "grupo")
	*r = out
	return nil
}
