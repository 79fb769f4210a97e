package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// AbcThresholds cortes de participación acumulada sobre la utilidad positiva total.
type AbcThresholds struct {
	A decimal.Decimal // ≤ A → clase A
	B decimal.Decimal // ≤ B → clase B; resto C
}

// DefaultAbcThresholds 80% / 95%.
func DefaultAbcThresholds() AbcThresholds {
	return AbcThresholds{A: decimal.RequireFromString("0.80"), B: decimal.RequireFromString("0.95")}
}

// AttributeLineProfit asigna a una línea de venta su parte de la utilidad neta de la orden,
// proporcional a su aporte de venta: orderNetProfit × (lineRevenue / orderTotal).
// La utilidad por línea no se registra de forma independiente.
func AttributeLineProfit(orderNetProfit, lineRevenue, orderTotal decimal.Decimal) decimal.Decimal {
	if orderTotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return orderNetProfit.Mul(lineRevenue).Div(orderTotal)
}

// ClassifyABC ordena por utilidad descendente y asigna A/B/C por utilidad acumulada.
// Todo producto con utilidad ≤ 0 es C. Los productos fuera del ranking no aparecen en el mapa (el caller los trata como C).
func ClassifyABC(rankings []entity.ProfitRanking, th AbcThresholds) map[string]entity.AbcClass {
	sorted := make([]entity.ProfitRanking, len(rankings))
	copy(sorted, rankings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TotalProfit.Equal(sorted[j].TotalProfit) {
			return sorted[i].TotalProfit.GreaterThan(sorted[j].TotalProfit)
		}
		return sorted[i].ProductID < sorted[j].ProductID
	})

	totalPositive := decimal.Zero
	for _, r := range sorted {
		if r.TotalProfit.GreaterThan(decimal.Zero) {
			totalPositive = totalPositive.Add(r.TotalProfit)
		}
	}

	classes := make(map[string]entity.AbcClass, len(sorted))
	cumulative := decimal.Zero
	for _, r := range sorted {
		if !r.TotalProfit.GreaterThan(decimal.Zero) {
			classes[r.ProductID] = entity.AbcClassC
			continue
		}
		cumulative = cumulative.Add(r.TotalProfit)
		share := cumulative.Div(totalPositive)
		switch {
		case share.LessThanOrEqual(th.A):
			classes[r.ProductID] = entity.AbcClassA
		case share.LessThanOrEqual(th.B):
			classes[r.ProductID] = entity.AbcClassB
		default:
			classes[r.ProductID] = entity.AbcClassC
		}
	}
	return classes
}
