package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.LegacyStockRepository = (*LegacyStockRepo)(nil)

// LegacyStockRepo existencias importadas del sistema anterior (tabla legacy_stock).
type LegacyStockRepo struct {
	q Querier
}

// NewLegacyStockRepository construye el adaptador.
func NewLegacyStockRepository(q Querier) *LegacyStockRepo {
	return &LegacyStockRepo{q: q}
}

// ListByStore existencias heredadas de la tienda, ordenadas por producto.
func (r *LegacyStockRepo) ListByStore(ctx context.Context, storeID string) ([]entity.LegacyStock, error) {
	rows, err := r.q.Query(ctx,
		`SELECT store_id, product_id, quantity FROM legacy_stock WHERE store_id = $1 ORDER BY product_id`, storeID)
	if err != nil {
		return nil, mapError("legacy.ListByStore", err)
	}
	defer rows.Close()

	var out []entity.LegacyStock
	for rows.Next() {
		var s entity.LegacyStock
		if err := rows.Scan(&s.StoreID, &s.ProductID, &s.Quantity); err != nil {
			return nil, mapError("legacy.ListByStore scan", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("legacy.ListByStore rows", err)
	}
	return out, nil
}
