package inventory

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
)

// ProductKeyPrefix prefijo obligatorio de toda clave de producto.
const ProductKeyPrefix = "merch_"

const maxProductKeyLen = 64

// Topes de cantidades. MaxQuantity × MaxPackCount cabe en int64 y deja margen para sumar filas.
const (
	MaxQuantity  int64 = 1_000_000_000
	MaxPackCount int64 = 1_000_000
)

var (
	productKeyRe = regexp.MustCompile(`^merch_[a-z0-9_]+$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsProductKey indica si k tiene forma de clave de producto (sin validar longitud).
func IsProductKey(k string) bool {
	return strings.HasPrefix(k, ProductKeyPrefix)
}

// ValidateProductKey comprueba que la clave sea segura para usarla como nombre de producto.
func ValidateProductKey(k string) error {
	if len(k) > maxProductKeyLen || !productKeyRe.MatchString(k) {
		return fmt.Errorf("%w: clave de producto %q (use merch_ seguido de a-z, 0-9 o _)", domain.ErrInvalidInput, k)
	}
	return nil
}

// ProductKeyFromName deriva la clave desde el nombre visible: "Gorra Azúl" -> "merch_gorra_azul".
// Si el nombre ya trae el prefijo no se duplica.
func ProductKeyFromName(name string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return "", fmt.Errorf("%w: nombre de producto %q", domain.ErrInvalidInput, name)
	}
	slug := strings.Trim(nonAlnumRe.ReplaceAllString(plain, "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("%w: nombre de producto vacío", domain.ErrInvalidInput)
	}
	key := slug
	if !strings.HasPrefix(key, ProductKeyPrefix) {
		key = ProductKeyPrefix + slug
	}
	if err := ValidateProductKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// ValidateQuantities valida claves y que cada cantidad esté en [0, MaxQuantity].
func ValidateQuantities(q entity.Quantities) error {
	for k, v := range q {
		if err := ValidateProductKey(k); err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, k)
		}
		if v > MaxQuantity {
			return fmt.Errorf("%w: cantidad de %s supera el máximo (%d)", domain.ErrInvalidInput, k, MaxQuantity)
		}
	}
	return nil
}

// ValidatePackCount comprueba que cantidad_packs esté en [0, MaxPackCount].
func ValidatePackCount(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: cantidad_packs negativa", domain.ErrInvalidInput)
	}
	if n > MaxPackCount {
		return fmt.Errorf("%w: cantidad_packs supera el máximo (%d)", domain.ErrInvalidInput, MaxPackCount)
	}
	return nil
}
