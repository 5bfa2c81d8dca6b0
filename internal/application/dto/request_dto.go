package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
)

// ProductSelection productos de una solicitud. Acepta las dos formas históricas:
//   - lista ["merch_tacos", "merch_gorra"]: 1 unidad de cada producto por pack;
//   - objeto {"merch_tacos": 2}: unidades por pack explícitas.
type ProductSelection entity.Quantities

// UnmarshalJSON implementa json.Unmarshaler.
func (p *ProductSelection) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	out := ProductSelection{}
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
	case b[0] == '[':
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return fmt.Errorf("%w: productos debe ser una lista de claves", domain.ErrInvalidInput)
		}
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			out[n] = 1
		}
	case b[0] == '{':
		fields, err := decodeObject(b)
		if err != nil {
			return err
		}
		for k, raw := range fields {
			n, err := parseInt(raw)
			if err != nil {
				return fmt.Errorf("%w (%s)", err, k)
			}
			out[k] = n
		}
	default:
		return fmt.Errorf("%w: productos debe ser lista u objeto", domain.ErrInvalidInput)
	}
	*p = out
	return nil
}

// CreateRequestRequest body de POST /api/solicitud.
type CreateRequestRequest struct {
	Requester string           `json:"solicitante"`
	Group     string           `json:"grupo"`
	TaxID     string           `json:"ruc"`
	VisitDate string           `json:"fecha_visita"`
	PackCount Count            `json:"cantidad_packs"`
	Products  ProductSelection `json:"productos"`
	Catalogs  string           `json:"catalogos"`
}

// ConfirmRequestRequest body de PUT /api/solicitudes/:id/confirm.
// Las cantidades pueden venir en "productos" (solo objeto) o como claves merch_* al nivel raíz; se combinan.
type ConfirmRequestRequest struct {
	Confirmer    string
	Observations string
	Quantities   entity.Quantities
}

// UnmarshalJSON implementa json.Unmarshaler.
func (r *ConfirmRequestRequest) UnmarshalJSON(b []byte) error {
	fields, err := decodeObject(b)
	if err != nil {
		return err
	}
	out := ConfirmRequestRequest{Quantities: entity.Quantities{}}
	if out.Confirmer, err = stringField(fields, "confirmado_por"); err != nil {
		return err
	}
	if out.Observations, err = stringField(fields, "observaciones"); err != nil {
		return err
	}
	if raw, ok := fields["productos"]; ok {
		// La lista no dice cuántas unidades se aprueban.
		if t := bytes.TrimSpace(raw); len(t) > 0 && t[0] == '[' {
			return fmt.Errorf("%w: al confirmar, productos debe ser un objeto {clave: cantidad}", domain.ErrInvalidInput)
		}
		var sel ProductSelection
		if err := sel.UnmarshalJSON(raw); err != nil {
			return err
		}
		for k, v := range sel {
			out.Quantities[k] = v
		}
	}
	for key, raw := range fields {
		if !domaininv.IsProductKey(key) {
			continue
		}
		n, err := parseInt(raw)
		if err != nil {
			return fmt.Errorf("%w (%s)", err, key)
		}
		out.Quantities[key] = n
	}
	*r = out
	return nil
}

// RequestResponse salida de una solicitud.
type RequestResponse struct {
	ID          int64            `json:"id"`
	Requester   string           `json:"solicitante"`
	Group       string           `json:"grupo"`
	TaxID       string           `json:"ruc"`
	VisitDate   string           `json:"fecha_visita"`
	PackCount   int64            `json:"cantidad_packs"`
	Products    map[string]int64 `json:"productos"`
	Catalogs    string           `json:"catalogos"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"timestamp"`
	ConfirmedAt *time.Time       `json:"confirmed_at,omitempty"`
}

// ConfirmationResponse salida de una confirmación.
type ConfirmationResponse struct {
	ID           int64            `json:"id"`
	RequestID    int64            `json:"solicitud_id"`
	Group        string           `json:"grupo"`
	Confirmer    string           `json:"confirmado_por"`
	Observations string           `json:"observaciones"`
	Quantities   map[string]int64 `json:"productos"`
	CreatedAt    time.Time        `json:"timestamp"`
}
