package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// LegacyStockRepository existencias heredadas del sistema anterior (fuente de la migración inicial).
type LegacyStockRepository interface {
	ListByStore(ctx context.Context, storeID string) ([]entity.LegacyStock, error)
}
