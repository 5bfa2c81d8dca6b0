package entity

import (
	"sort"
	"time"
)

// Product producto conocido por una unidad (reemplaza a las columnas merch_* dinámicas).
type Product struct {
	BusinessUnit BusinessUnit
	Key          string // merch_xxx
	Name         string
	CreatedAt    time.Time
}

// Quantities cantidad entera por clave de producto (merch_xxx).
type Quantities map[string]int64

// Keys devuelve las claves ordenadas.
func (q Quantities) Keys() []string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copia el mapa; nil se convierte en mapa vacío.
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}
