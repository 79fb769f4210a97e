package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitRanking utilidad y venta acumulada de un producto en una ventana (transitorio, no se persiste).
type ProfitRanking struct {
	ProductID    string
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
}

// SaleRecord vista de lectura de una orden de venta: subtotal, utilidad neta y venta por línea.
type SaleRecord struct {
	ID        string
	StoreID   string
	Subtotal  decimal.Decimal
	NetProfit decimal.Decimal
	CreatedAt time.Time
	Lines     []SaleLine
}

// SaleLine venta de un producto dentro de una orden.
type SaleLine struct {
	ProductID string
	Revenue   decimal.Decimal
}

// LegacyStock existencia heredada del sistema anterior, pendiente de abrir en el ledger.
type LegacyStock struct {
	StoreID   string
	ProductID string
	Quantity  int64
}
