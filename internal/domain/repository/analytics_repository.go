package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura sobre ventas.
type AnalyticsRepository interface {
	// GetProfitRanking devuelve venta y utilidad por producto desde `since`.
	// La utilidad de cada línea es netProfit de la orden × (venta de la línea / subtotal de la orden).
	GetProfitRanking(ctx context.Context, storeID string, since time.Time) ([]entity.ProfitRanking, error)
}
