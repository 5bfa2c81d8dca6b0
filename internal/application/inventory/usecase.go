package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

// InventoryUseCase casos de uso del libro de inventario: listar, agregar entregas y dar de alta productos.
type InventoryUseCase struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{inventoryRepo: inventoryRepo, productRepo: productRepo}
}

// List devuelve todas las filas de la unidad (más recientes primero). Cada fila incluye
// todos los productos conocidos de la unidad; los que no mencionó quedan en 0.
func (uc *InventoryUseCase) List(ctx context.Context, unit entity.BusinessUnit) ([]dto.InventoryEntryResponse, error) {
	entries, err := uc.inventoryRepo.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	keys := productKeys(products)
	out := make([]dto.InventoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toInventoryEntryResponse(e, keys))
	}
	return out, nil
}

// Append registra una entrega. Las claves de producto nuevas se dan de alta antes de insertar.
func (uc *InventoryUseCase) Append(ctx context.Context, unit entity.BusinessUnit, in dto.AppendInventoryRequest) (int64, error) {
	if in.Responsible == "" && in.Observations == "" && len(in.Quantities) == 0 {
		return 0, fmt.Errorf("%w: no se proporcionaron datos", domain.ErrInvalidInput)
	}
	if err := domaininv.ValidateQuantities(in.Quantities); err != nil {
		return 0, err
	}
	for _, key := range in.Quantities.Keys() {
		if err := uc.productRepo.Ensure(ctx, &entity.Product{BusinessUnit: unit, Key: key, Name: key}); err != nil {
			return 0, err
		}
	}
	entry := &entity.InventoryEntry{
		BusinessUnit: unit,
		Responsible:  in.Responsible,
		Observations: in.Observations,
		Quantities:   in.Quantities.Clone(),
	}
	if err := uc.inventoryRepo.Create(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// NewProduct da de alta un producto (si no existe) e inserta una fila semilla solo con esa clave.
// Llamarlo dos veces con la misma clave no falla e inserta dos filas.
func (uc *InventoryUseCase) NewProduct(ctx context.Context, in dto.NewProductRequest) (int64, error) {
	unit, err := entity.ParseBusinessUnit(in.Group)
	if err != nil {
		return 0, err
	}
	name := strings.TrimSpace(in.Name)
	column := strings.TrimSpace(in.Column)
	if name == "" && column == "" {
		return 0, fmt.Errorf("%w: nombre_producto o columna es requerido", domain.ErrInvalidInput)
	}
	if column == "" {
		if column, err = domaininv.ProductKeyFromName(name); err != nil {
			return 0, err
		}
	} else if err := domaininv.ValidateProductKey(column); err != nil {
		return 0, err
	}
	if name == "" {
		name = column
	}
	seed := entity.Quantities{column: int64(in.Quantity)}
	if err := domaininv.ValidateQuantities(seed); err != nil {
		return 0, err
	}

	if err := uc.productRepo.Ensure(ctx, &entity.Product{BusinessUnit: unit, Key: column, Name: name}); err != nil {
		return 0, err
	}
	entry := &entity.InventoryEntry{
		BusinessUnit: unit,
		Quantities:   seed,
	}
	if err := uc.inventoryRepo.Create(ctx, entry); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// ListProducts lista los productos registrados de la unidad.
func (uc *InventoryUseCase) ListProducts(ctx context.Context, unit entity.BusinessUnit) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{
			Group:     p.BusinessUnit.String(),
			Column:    p.Key,
			Name:      p.Name,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

func productKeys(products []*entity.Product) []string {
	keys := make([]string, 0, len(products))
	for _, p := range products {
		keys = append(keys, p.Key)
	}
	return keys
}

func toInventoryEntryResponse(e *entity.InventoryEntry, keys []string) dto.InventoryEntryResponse {
	return dto.InventoryEntryResponse{
		ID:           e.ID,
		Group:        e.BusinessUnit.String(),
		Responsible:  e.Responsible,
		Observations: e.Observations,
		Quantities:   domaininv.FillMissing(e.Quantities, keys),
		CreatedAt:    e.CreatedAt,
	}
}
