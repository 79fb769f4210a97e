package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockOrderStatus estado de una orden de reposición (orden de compra a proveedor).
type RestockOrderStatus string

const (
	RestockStatusDraft             RestockOrderStatus = "DRAFT"
	RestockStatusOrdered           RestockOrderStatus = "ORDERED"
	RestockStatusPartiallyReceived RestockOrderStatus = "PARTIALLY_RECEIVED"
	RestockStatusCompleted         RestockOrderStatus = "COMPLETED"
	RestockStatusCancelled         RestockOrderStatus = "CANCELLED"
)

// IsValid indica si el estado es conocido.
func (s RestockOrderStatus) IsValid() bool {
	switch s {
	case RestockStatusDraft, RestockStatusOrdered, RestockStatusPartiallyReceived,
		RestockStatusCompleted, RestockStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo los estados solo avanzan; CANCELLED solo desde DRAFT u ORDERED.
func (s RestockOrderStatus) CanTransitionTo(target RestockOrderStatus) bool {
	switch s {
	case RestockStatusDraft:
		return target == RestockStatusOrdered || target == RestockStatusCancelled
	case RestockStatusOrdered:
		return target == RestockStatusPartiallyReceived || target == RestockStatusCompleted || target == RestockStatusCancelled
	case RestockStatusPartiallyReceived:
		return target == RestockStatusCompleted
	}
	return false
}

// RestockOrderItem línea de la orden. QuantityReceived es acumulado y nunca se reinicia.
type RestockOrderItem struct {
	ID               string
	RestockOrderID   string
	ProductID        string
	Quantity         int64           // ordenado
	Cost             decimal.Decimal // costo unitario al momento de ordenar
	Subtotal         decimal.Decimal
	QuantityReceived int64
	Index            int
}

// IsFullyReceived sobre-recepción también cuenta como completa.
func (i *RestockOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived >= i.Quantity
}

// RestockOrder orden de compra con su ciclo de recepción.
type RestockOrder struct {
	ID           string
	StoreID      string
	SupplierID   string
	OrderNumber  string
	Status       RestockOrderStatus
	TotalAmount  decimal.Decimal // Σ quantity × cost mientras está en DRAFT
	ShippingCost decimal.Decimal
	Notes        string
	Items        []RestockOrderItem
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	OrderedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

// IsEditable ítems y proveedor solo se modifican en DRAFT.
func (o *RestockOrder) IsEditable() bool { return o.Status == RestockStatusDraft }

// IsDeletable solo DRAFT o CANCELLED.
func (o *RestockOrder) IsDeletable() bool {
	return o.Status == RestockStatusDraft || o.Status == RestockStatusCancelled
}

// CanReceive se permite recibir sobre una orden COMPLETED (sobre-recepción); el estado no cambia.
func (o *RestockOrder) CanReceive() bool {
	switch o.Status {
	case RestockStatusOrdered, RestockStatusPartiallyReceived, RestockStatusCompleted:
		return true
	}
	return false
}

// RecalculateTotals recalcula subtotales, índices y TotalAmount.
func (o *RestockOrder) RecalculateTotals() {
	total := decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		it.Index = i
		it.Subtotal = it.Cost.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(it.Subtotal)
	}
	o.TotalAmount = total
}

// ItemByID busca una línea por ID.
func (o *RestockOrder) ItemByID(id string) *RestockOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// MarkOrdered DRAFT → ORDERED.
func (o *RestockOrder) MarkOrdered(now time.Time) bool {
	if !o.Status.CanTransitionTo(RestockStatusOrdered) || len(o.Items) == 0 {
		return false
	}
	o.Status = RestockStatusOrdered
	o.OrderedAt = &now
	o.UpdatedAt = now
	return true
}

// Cancel DRAFT|ORDERED → CANCELLED.
func (o *RestockOrder) Cancel(now time.Time) bool {
	if !o.Status.CanTransitionTo(RestockStatusCancelled) {
		return false
	}
	o.Status = RestockStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	return true
}

// RecomputeStatus deriva el estado a partir de las cantidades recibidas:
// todas completas → COMPLETED; alguna > 0 → PARTIALLY_RECEIVED; si no, sin cambio.
// Nunca retrocede. Devuelve true si el estado cambió.
func (o *RestockOrder) RecomputeStatus(now time.Time) bool {
	if len(o.Items) == 0 {
		return false
	}
	all, some := true, false
	for i := range o.Items {
		if !o.Items[i].IsFullyReceived() {
			all = false
		}
		if o.Items[i].QuantityReceived > 0 {
			some = true
		}
	}
	var target RestockOrderStatus
	switch {
	case all:
		target = RestockStatusCompleted
	case some:
		target = RestockStatusPartiallyReceived
	default:
		return false
	}
	if target == o.Status || !o.Status.CanTransitionTo(target) {
		return false
	}
	o.Status = target
	o.UpdatedAt = now
	if target == RestockStatusCompleted {
		o.CompletedAt = &now
	}
	return true
}
