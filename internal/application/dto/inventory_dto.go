package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
)

// AppendInventoryRequest body de POST /api/inventario?tabla=.
// Solo acepta responsable, observaciones y claves merch_*; cualquier otra clave es un error.
type AppendInventoryRequest struct {
	Responsible  string
	Observations string
	Quantities   entity.Quantities
}

// UnmarshalJSON implementa json.Unmarshaler con la lista blanca de claves.
func (r *AppendInventoryRequest) UnmarshalJSON(b []byte) error {
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no se proporcionaron datos", domain.ErrInvalidInput)
	}
	out := AppendInventoryRequest{Quantities: entity.Quantities{}}
	for key, raw := range fields {
		switch {
		case key == "responsable":
			if out.Responsible, err = stringField(fields, key); err != nil {
				return err
			}
		case key == "observaciones":
			if out.Observations, err = stringField(fields, key); err != nil {
				return err
			}
		case domaininv.IsProductKey(key):
			n, err := parseInt(raw)
			if err != nil {
				return fmt.Errorf("%w (%s)", err, key)
			}
			out.Quantities[key] = n
		default:
			return fmt.Errorf("%w: campo no permitido %q", domain.ErrInvalidInput, key)
		}
	}
	*r = out
	return nil
}

// NewProductRequest body de POST /api/nuevo_producto.
type NewProductRequest struct {
	Group    string `json:"grupo"`
	Name     string `json:"nombre_producto"`
	Column   string `json:"columna"`
	Quantity Count  `json:"cantidad"`
}

// InventoryEntryResponse fila de inventario con una clave por producto al mismo nivel.
type InventoryEntryResponse struct {
	ID           int64
	Group        string
	Responsible  string
	Observations string
	Quantities   map[string]int64
	CreatedAt    time.Time
}

// MarshalJSON implementa json.Marshaler.
func (r InventoryEntryResponse) MarshalJSON() ([]byte, error) {
	return flatten(map[string]any{
		"id":            r.ID,
		"grupo":         r.Group,
		"responsable":   r.Responsible,
		"observaciones": r.Observations,
		"timestamp":     r.CreatedAt,
	}, r.Quantities)
}

// UnmarshalJSON permite leer la forma plana (tests y clientes Go).
func (r *InventoryEntryResponse) UnmarshalJSON(b []byte) error {
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	out := InventoryEntryResponse{Quantities: map[string]int64{}}
	for key, raw := range fields {
		switch {
		case key == "id":
			if out.ID, err = parseInt(raw); err != nil {
				return err
			}
		case key == "timestamp":
			if err := json.Unmarshal(raw, &out.CreatedAt); err != nil {
				return err
			}
		case domaininv.IsProductKey(key):
			if out.Quantities[key], err = parseInt(raw); err != nil {
				return err
			}
		}
	}
	out.Group, _ = stringField(fields, "grupo")
	out.Responsible, _ = stringField(fields, "responsable")
	out.Observations, _ = stringField(fields, "observaciones")
	*r = out
	return nil
}

// ProductResponse producto registrado de una unidad.
type ProductResponse struct {
	Group     string    `json:"grupo"`
	Column    string    `json:"columna"`
	Name      string    `json:"nombre_producto"`
	CreatedAt time.Time `json:"timestamp"`
}
