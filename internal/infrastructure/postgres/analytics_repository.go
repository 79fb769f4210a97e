package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetProfitRanking venta y utilidad por producto desde `since`.
// La utilidad de la orden se reparte entre sus líneas en proporción a la venta de cada una:
// net_profit × (revenue_linea / subtotal_orden). Órdenes con subtotal ≤ 0 no aportan utilidad.
func (r *AnalyticsRepo) GetProfitRanking(ctx context.Context, storeID string, since time.Time) ([]entity.ProfitRanking, error) {
	const query = `
	SELECT
	    l.product_id,
	    SUM(l.revenue)                                                           AS total_revenue,
	    SUM(CASE WHEN o.subtotal > 0 THEN o.net_profit * l.revenue / o.subtotal
	             ELSE 0 END)                                                     AS total_profit
	FROM sales_orders o
	JOIN sales_order_lines l ON l.sales_order_id = o.id
	WHERE o.store_id = $1
	  AND o.created_at >= $2
	GROUP BY l.product_id
	ORDER BY total_profit DESC, l.product_id`

	rows, err := r.q.Query(ctx, query, storeID, since)
	if err != nil {
		return nil, mapError("analytics.GetProfitRanking", err)
	}
	defer rows.Close()

	var out []entity.ProfitRanking
	for rows.Next() {
		var row entity.ProfitRanking
		if err := rows.Scan(&row.ProductID, &row.TotalRevenue, &row.TotalProfit); err != nil {
			return nil, mapError("analytics.GetProfitRanking scan", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("analytics.GetProfitRanking rows", err)
	}
	return out, nil
}
