package entity

import (
	"fmt"
	"strings"

	"github.com/kossodo/merch-api/internal/domain"
)

// BusinessUnit unidad de negocio dueña de un inventario y un stock independientes.
type BusinessUnit string

// Unidades de negocio conocidas.
const (
	UnitKossodo  BusinessUnit = "kossodo"
	UnitKossomet BusinessUnit = "kossomet"
)

// ParseBusinessUnit valida el valor recibido en query/body. No toca la base de datos.
func ParseBusinessUnit(s string) (BusinessUnit, error) {
	u := BusinessUnit(strings.TrimSpace(s))
	switch u {
	case UnitKossodo, UnitKossomet:
		return u, nil
	}
	if s == "" {
		return "", domain.ErrInvalidUnit
	}
	return "", fmt.Errorf("%w (recibido %q)", domain.ErrInvalidUnit, s)
}

func (u BusinessUnit) String() string { return string(u) }
