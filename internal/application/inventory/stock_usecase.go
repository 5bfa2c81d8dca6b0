package inventory

import (
	"context"
	"fmt"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

// StockUseCase recalcula el stock de una unidad desde cero en cada llamada:
// Σ inventario − Σ confirmado, y persiste la fila de resumen.
// La tabla de confirmaciones es la única fuente de consumo.
type StockUseCase struct {
	inventoryRepo    repository.InventoryRepository
	confirmationRepo repository.ConfirmationRepository
	productRepo      repository.ProductRepository
	stockRepo        repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	inventoryRepo repository.InventoryRepository,
	confirmationRepo repository.ConfirmationRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *StockUseCase {
	return &StockUseCase{
		inventoryRepo:    inventoryRepo,
		confirmationRepo: confirmationRepo,
		productRepo:      productRepo,
		stockRepo:        stockRepo,
	}
}

// Compute descubre los productos, suma, resta, hace upsert del resumen y lo devuelve completo.
func (uc *StockUseCase) Compute(ctx context.Context, unit entity.BusinessUnit) (*dto.StockResponse, error) {
	products, err := uc.productRepo.ListByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	invTotals, err := uc.inventoryRepo.Totals(ctx, unit)
	if err != nil {
		return nil, err
	}
	confTotals, err := uc.confirmationRepo.Totals(ctx, unit)
	if err != nil {
		return nil, err
	}

	keys := domaininv.MergeKeys(productKeys(products), invTotals.Keys())
	stock := domaininv.ComputeStock(keys, invTotals, confTotals)

	summary, err := uc.stockRepo.Upsert(ctx, unit, stock)
	if err != nil {
		return nil, fmt.Errorf("guardar resumen de stock: %w", err)
	}
	return &dto.StockResponse{
		ID:         summary.ID,
		Group:      summary.BusinessUnit.String(),
		Quantities: summary.Quantities,
		UpdatedAt:  summary.UpdatedAt,
	}, nil
}
