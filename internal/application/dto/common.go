package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kossodo/merch-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP. Error es el contrato con el frontend; Code es el código máquina.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CreatedResponse respuesta de los endpoints que insertan una fila.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// Count entero que acepta número JSON o string numérico (los formularios HTML envían strings).
type Count int64

// UnmarshalJSON implementa json.Unmarshaler.
func (c *Count) UnmarshalJSON(b []byte) error {
	n, err := parseInt(b)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

// parseInt interpreta un valor JSON como entero: 5, 5.0, "5". null cuenta como 0.
func parseInt(raw []byte) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: cantidad %s", domain.ErrInvalidInput, raw)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: cantidad no entera %s", domain.ErrInvalidInput, raw)
	}
	// 2^63 ya no cabe en int64.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: cantidad fuera de rango %s", domain.ErrInvalidInput, raw)
	}
	return int64(f), nil
}

// decodeObject decodifica un objeto JSON en sus campos crudos.
func decodeObject(b []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("%w: se esperaba un objeto JSON", domain.ErrInvalidInput)
	}
	return fields, nil
}

// stringField lee un campo string opcional; null o ausente = "".
func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s debe ser texto", domain.ErrInvalidInput, key)
	}
	return strings.TrimSpace(s), nil
}

// flatten arma un objeto JSON con los campos base y una clave por producto al mismo nivel.
func flatten(base map[string]any, quantities map[string]int64) ([]byte, error) {
	out := make(map[string]any, len(base)+len(quantities))
	for k, v := range quantities {
		out[k] = v
	}
	for k, v := range base {
		out[k] = v
	}
	return json.Marshal(out)
}
