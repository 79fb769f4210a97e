package restock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

// ReceiveLine cantidad física recibida de una línea de la orden.
// CostOverride reemplaza el costo ordenado (factura del proveedor con otro precio); el flete se aplica encima.
type ReceiveLine struct {
	ItemID       string
	Quantity     int64
	CostOverride *decimal.Decimal
}

// ReceiveResult resultado de una recepción.
type ReceiveResult struct {
	Order              *entity.RestockOrder
	Movements          []*entity.Movement
	SkippedItemIDs     []string // ids que no pertenecen a la orden
	SkippedNonPositive []string // líneas con cantidad ≤ 0
}

type receipt struct {
	item   *entity.RestockOrderItem
	qty    int64
	landed decimal.Decimal
}

// Receive registra mercancía recibida en una sola transacción:
// un RESTOCK_RECEIVED por línea con costo landed, suma aditiva de quantity_received,
// costo promedio ponderado del producto y recálculo del estado de la orden.
func (uc *UseCase) Receive(ctx context.Context, storeID, userID, orderID string, lines []ReceiveLine) (*ReceiveResult, error) {
	res := &ReceiveResult{SkippedItemIDs: []string{}, SkippedNonPositive: []string{}}

	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		// la orden queda bloqueada hasta el commit: dos recepciones concurrentes se serializan
		order, err := lockOrder(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if !order.CanReceive() {
			return domain.NewConflictError(resourceName, orderID, string(order.Status), "recibir")
		}

		receipts, err := uc.selectReceipts(order, lines, res)
		if err != nil {
			return err
		}

		params := make([]inventory.MovementParams, 0, len(receipts))
		reason := "Recepción de orden " + order.OrderNumber
		for _, r := range receipts {
			cost := r.landed
			ref := order.ID
			params = append(params, inventory.MovementParams{
				StoreID:     storeID,
				ProductID:   r.item.ProductID,
				Type:        entity.MovementTypeRestockReceived,
				Quantity:    r.qty,
				Reason:      reason,
				Cost:        &cost,
				ReferenceID: &ref,
				CreatedBy:   userID,
			})
		}
		movs, err := uc.ledger.CreateMovementBatch(ctx, tx, params)
		if err != nil {
			return err
		}
		res.Movements = movs

		if err := uc.updateAcqPrices(ctx, tx, movs); err != nil {
			return err
		}
		for _, r := range receipts {
			if err := tx.RestockOrders().IncrementReceived(ctx, r.item.ID, r.qty); err != nil {
				return err
			}
		}

		// estado derivado de las cantidades persistidas, no de la copia en memoria
		refreshed, err := tx.RestockOrders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if refreshed == nil {
			return fmt.Errorf("%s %s: %w", resourceName, orderID, domain.ErrNotFound)
		}
		if refreshed.RecomputeStatus(uc.now()) {
			if err := tx.RestockOrders().UpdateHeader(ctx, refreshed); err != nil {
				return err
			}
		}
		res.Order = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Str("order_id", orderID).
		Str("status", string(res.Order.Status)).
		Int("received_lines", len(res.Movements)).
		Int("skipped_unknown", len(res.SkippedItemIDs)).
		Int("skipped_non_positive", len(res.SkippedNonPositive)).
		Msg("recepción de orden registrada")
	return res, nil
}

// selectReceipts filtra y valida las líneas antes de cualquier escritura.
func (uc *UseCase) selectReceipts(order *entity.RestockOrder, lines []ReceiveLine, res *ReceiveResult) ([]receipt, error) {
	receipts := make([]receipt, 0, len(lines))
	for i, line := range lines {
		item := order.ItemByID(line.ItemID)
		if item == nil {
			res.SkippedItemIDs = append(res.SkippedItemIDs, line.ItemID)
			continue
		}
		if line.Quantity <= 0 {
			res.SkippedNonPositive = append(res.SkippedNonPositive, line.ItemID)
			continue
		}
		unit := item.Cost
		if line.CostOverride != nil {
			if line.CostOverride.IsNegative() {
				return nil, domain.NewValidationError(fmt.Sprintf("items[%d].cost", i), "no puede ser negativo")
			}
			unit = *line.CostOverride
		}
		receipts = append(receipts, receipt{item: item, qty: line.Quantity, landed: uc.freight(order, item, unit)})
	}
	if len(receipts) == 0 {
		return nil, domain.NewValidationError("items", "ninguna línea válida para recibir")
	}
	return receipts, nil
}

// updateAcqPrices recalcula el costo promedio en el orden de aplicación: cada movimiento trae
// el stock previo exacto, así que dos líneas del mismo producto se ponderan en secuencia.
func (uc *UseCase) updateAcqPrices(ctx context.Context, tx *inventory.Tx, movs []*entity.Movement) error {
	current := map[string]decimal.Decimal{}
	order := []string{}
	for _, m := range movs {
		acq, ok := current[m.ProductID]
		if !ok {
			p, err := tx.Products().GetByID(ctx, m.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", m.ProductID, domain.ErrNotFound)
			}
			acq = p.AcqPrice
			order = append(order, m.ProductID)
		}
		current[m.ProductID] = domaininv.CostCalculator(m.PreviousStock, acq, m.Quantity, *m.Cost)
	}
	for _, id := range order {
		if err := tx.Products().UpdateAcqPrice(ctx, id, current[id]); err != nil {
			return err
		}
	}
	return nil
}
