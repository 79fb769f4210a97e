package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// RestockOrderItemRequest línea de una orden en borrador.
type RestockOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Cost      decimal.Decimal `json:"cost"`
}

// CreateRestockOrderRequest body para POST /api/restock-orders.
type CreateRestockOrderRequest struct {
	SupplierID   string                    `json:"supplier_id" validate:"required"`
	ShippingCost decimal.Decimal           `json:"shipping_cost"`
	Notes        string                    `json:"notes" validate:"max=2000"`
	Items        []RestockOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateRestockOrderRequest body para PUT /api/restock-orders/:id (solo DRAFT).
// Items no nulo reemplaza todas las líneas.
type UpdateRestockOrderRequest struct {
	SupplierID   *string                   `json:"supplier_id,omitempty" validate:"omitempty,min=1"`
	ShippingCost *decimal.Decimal          `json:"shipping_cost,omitempty"`
	Notes        *string                   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items        []RestockOrderItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

// ReceiveItemRequest cantidad recibida de una línea. Cost reemplaza el costo ordenado antes del flete.
type ReceiveItemRequest struct {
	ItemID   string           `json:"item_id" validate:"required"`
	Quantity int64            `json:"quantity"`
	Cost     *decimal.Decimal `json:"cost,omitempty"`
}

// ReceiveRestockOrderRequest body para POST /api/restock-orders/:id/receive.
type ReceiveRestockOrderRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RestockOrderListRequest query de GET /api/restock-orders.
type RestockOrderListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=DRAFT ORDERED PARTIALLY_RECEIVED COMPLETED CANCELLED"`
	PageRequest
}

// ── Responses ─────────────────────────────────────────────────────────────────

// RestockOrderItemResponse línea de la orden.
type RestockOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         int64           `json:"quantity"`
	Cost             decimal.Decimal `json:"cost"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	QuantityReceived int64           `json:"quantity_received"`
}

// RestockOrderResponse orden de reposición con sus líneas.
type RestockOrderResponse struct {
	ID           string                     `json:"id"`
	StoreID      string                     `json:"store_id"`
	SupplierID   string                     `json:"supplier_id"`
	OrderNumber  string                     `json:"order_number"`
	Status       string                     `json:"status"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	ShippingCost decimal.Decimal            `json:"shipping_cost"`
	Notes        string                     `json:"notes"`
	Items        []RestockOrderItemResponse `json:"items"`
	CreatedBy    string                     `json:"created_by"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
	OrderedAt    *time.Time                 `json:"ordered_at,omitempty"`
	CompletedAt  *time.Time                 `json:"completed_at,omitempty"`
	CancelledAt  *time.Time                 `json:"cancelled_at,omitempty"`
}

// RestockOrderListResponse lista paginada de órdenes.
type RestockOrderListResponse struct {
	Items []RestockOrderResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ReceiveRestockOrderResponse resultado de una recepción.
// Las líneas omitidas se informan siempre, nunca se descartan en silencio.
type ReceiveRestockOrderResponse struct {
	Order              RestockOrderResponse `json:"order"`
	Movements          []MovementResponse   `json:"movements"`
	SkippedItemIDs     []string             `json:"skipped_item_ids"`
	SkippedNonPositive []string             `json:"skipped_non_positive"`
}

// FromRestockOrder mapea la entidad a su respuesta.
func FromRestockOrder(o *entity.RestockOrder) RestockOrderResponse {
	items := make([]RestockOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, RestockOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			Cost:             it.Cost,
			Subtotal:         it.Subtotal,
			QuantityReceived: it.QuantityReceived,
		})
	}
	return RestockOrderResponse{
		ID:           o.ID,
		StoreID:      o.StoreID,
		SupplierID:   o.SupplierID,
		OrderNumber:  o.OrderNumber,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		ShippingCost: o.ShippingCost,
		Notes:        o.Notes,
		Items:        items,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		OrderedAt:    o.OrderedAt,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
	}
}
