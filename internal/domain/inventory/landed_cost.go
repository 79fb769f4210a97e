package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// FreightAllocator calcula el costo unitario landed de una línea recibida.
// Es una política de negocio intercambiable: la transacción de recepción no depende de la base de prorrateo.
type FreightAllocator func(order *entity.RestockOrder, item *entity.RestockOrderItem, unitCost decimal.Decimal) decimal.Decimal

// LandedFactor = 1 + shippingCost / max(totalOrderValue, 1).
func LandedFactor(shippingCost, totalOrderValue decimal.Decimal) decimal.Decimal {
	base := decimal.Max(totalOrderValue, decimal.NewFromInt(1))
	return decimal.NewFromInt(1).Add(shippingCost.Div(base))
}

// AllocateByOrderValue prorratea el flete según la participación de cada línea en el valor declarado de la orden.
func AllocateByOrderValue(order *entity.RestockOrder, _ *entity.RestockOrderItem, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(LandedFactor(order.ShippingCost, order.TotalAmount)).Round(4)
}

// NoFreight deja el costo unitario sin flete.
func NoFreight(_ *entity.RestockOrder, _ *entity.RestockOrderItem, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost
}
