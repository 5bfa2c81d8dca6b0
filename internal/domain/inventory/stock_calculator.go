package inventory

import (
	"sort"

	"github.com/kossodo/merch-api/internal/domain/entity"
)

// ComputeStock calcula el stock neto de una unidad (servicio de dominio).
// Stock[p] = Inventario[p] − Confirmado[p] para cada p en keys ∪ claves de inventario.
// Una clave presente solo en consumed no se agrega: sin entrada de inventario no es un producto de la unidad.
// El resultado puede ser negativo (sobre-compromiso).
func ComputeStock(keys []string, inventory, consumed entity.Quantities) entity.Quantities {
	stock := make(entity.Quantities, len(keys)+len(inventory))
	for _, k := range keys {
		stock[k] = 0
	}
	for k := range inventory {
		stock[k] = 0
	}
	for k := range stock {
		stock[k] = inventory[k] - consumed[k]
	}
	return stock
}

// MergeKeys une listas de claves sin duplicados, ordenadas.
func MergeKeys(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, k := range list {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FillMissing devuelve una copia de q con 0 para cada clave de keys ausente
// (equivale a las columnas INT DEFAULT 0 de una fila).
func FillMissing(q entity.Quantities, keys []string) entity.Quantities {
	out := q.Clone()
	for _, k := range keys {
		if _, ok := out[k]; !ok {
			out[k] = 0
		}
	}
	return out
}
