// Package restock implementa el ciclo de vida de las órdenes de reposición:
// borrador, emisión al proveedor, cancelación y recepción (total, parcial o sobre-recepción).
package restock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

const resourceName = "orden de reposición"

// UseCase órdenes de reposición. Las escrituras de stock pasan siempre por el Ledger.
type UseCase struct {
	tx      *inventory.Transactor
	ledger  *inventory.Ledger
	docs    OrderDocumentGenerator
	freight domaininv.FreightAllocator
	log     *logger.Logger
	now     func() time.Time
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithFreightAllocator reemplaza la política de prorrateo de flete.
func WithFreightAllocator(f domaininv.FreightAllocator) Option {
	return func(uc *UseCase) { uc.freight = f }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso. docs puede ser nil si no se exponen documentos.
func NewUseCase(tx *inventory.Transactor, ledger *inventory.Ledger, docs OrderDocumentGenerator, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		tx:      tx,
		ledger:  ledger,
		docs:    docs,
		freight: domaininv.AllocateByOrderValue,
		log:     log.Component("restock"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create registra una orden en DRAFT.
func (uc *UseCase) Create(ctx context.Context, storeID, userID string, in dto.CreateRestockOrderRequest) (*dto.RestockOrderResponse, error) {
	if err := validateShipping(in.ShippingCost); err != nil {
		return nil, err
	}
	now := uc.now()
	id := uuid.New().String()
	order := &entity.RestockOrder{
		ID:           id,
		StoreID:      storeID,
		SupplierID:   in.SupplierID,
		OrderNumber:  orderNumber(now, id),
		Status:       entity.RestockStatusDraft,
		ShippingCost: in.ShippingCost,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		if err := checkSupplier(ctx, tx, storeID, in.SupplierID); err != nil {
			return err
		}
		items, err := buildItems(ctx, tx, storeID, id, in.Items)
		if err != nil {
			return err
		}
		order.Items = items
		order.RecalculateTotals()
		return tx.RestockOrders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("store_id", storeID).Str("order_id", id).Str("order_number", order.OrderNumber).
		Int("items", len(order.Items)).Msg("orden de reposición creada")
	out := dto.FromRestockOrder(order)
	return &out, nil
}

// UpdateDraft modifica proveedor, flete, notas o líneas. Solo en DRAFT.
func (uc *UseCase) UpdateDraft(ctx context.Context, storeID, orderID string, in dto.UpdateRestockOrderRequest) (*dto.RestockOrderResponse, error) {
	if in.ShippingCost != nil {
		if err := validateShipping(*in.ShippingCost); err != nil {
			return nil, err
		}
	}
	var order *entity.RestockOrder
	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		var err error
		order, err = lockOrder(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if !order.IsEditable() {
			return domain.NewConflictError(resourceName, orderID, string(order.Status), "editar")
		}
		if in.SupplierID != nil {
			if err := checkSupplier(ctx, tx, storeID, *in.SupplierID); err != nil {
				return err
			}
			order.SupplierID = *in.SupplierID
		}
		if in.ShippingCost != nil {
			order.ShippingCost = *in.ShippingCost
		}
		if in.Notes != nil {
			order.Notes = strings.TrimSpace(*in.Notes)
		}
		if in.Items != nil {
			items, err := buildItems(ctx, tx, storeID, order.ID, in.Items)
			if err != nil {
				return err
			}
			order.Items = items
		}
		order.RecalculateTotals()
		order.UpdatedAt = uc.now()
		if in.Items != nil {
			if err := tx.RestockOrders().ReplaceItems(ctx, order.ID, order.Items); err != nil {
				return err
			}
		}
		return tx.RestockOrders().UpdateHeader(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromRestockOrder(order)
	return &out, nil
}

// MarkOrdered DRAFT → ORDERED. No mueve stock.
func (uc *UseCase) MarkOrdered(ctx context.Context, storeID, orderID string) (*dto.RestockOrderResponse, error) {
	return uc.transition(ctx, storeID, orderID, "emitir", func(o *entity.RestockOrder, now time.Time) error {
		if o.Status == entity.RestockStatusDraft && len(o.Items) == 0 {
			return domain.NewValidationError("items", "la orden no tiene líneas")
		}
		if !o.MarkOrdered(now) {
			return domain.NewConflictError(resourceName, o.ID, string(o.Status), "emitir")
		}
		return nil
	})
}

// Cancel DRAFT|ORDERED → CANCELLED. Una orden con recepciones no se cancela.
func (uc *UseCase) Cancel(ctx context.Context, storeID, orderID string) (*dto.RestockOrderResponse, error) {
	return uc.transition(ctx, storeID, orderID, "cancelar", func(o *entity.RestockOrder, now time.Time) error {
		if !o.Cancel(now) {
			return domain.NewConflictError(resourceName, o.ID, string(o.Status), "cancelar")
		}
		return nil
	})
}

// Delete borra una orden DRAFT o CANCELLED.
func (uc *UseCase) Delete(ctx context.Context, storeID, orderID string) error {
	return uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		order, err := lockOrder(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if !order.IsDeletable() {
			return domain.NewConflictError(resourceName, orderID, string(order.Status), "eliminar")
		}
		return tx.RestockOrders().Delete(ctx, orderID)
	})
}

// GetByID obtiene una orden de la tienda.
func (uc *UseCase) GetByID(ctx context.Context, storeID, orderID string) (*dto.RestockOrderResponse, error) {
	var order *entity.RestockOrder
	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		var err error
		order, err = findOrder(ctx, tx, storeID, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromRestockOrder(order)
	return &out, nil
}

// List lista órdenes de la tienda, más recientes primero.
func (uc *UseCase) List(ctx context.Context, storeID string, in dto.RestockOrderListRequest) (*dto.RestockOrderListResponse, error) {
	in.DefaultPage()
	filter := repository.RestockOrderFilter{
		StoreID: storeID,
		Status:  entity.RestockOrderStatus(in.Status),
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido: %q", in.Status))
	}
	var list []*entity.RestockOrder
	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		var err error
		list, err = tx.RestockOrders().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RestockOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromRestockOrder(o))
	}
	return &dto.RestockOrderListResponse{
		Items: items,
		Page:  in.Response(),
	}, nil
}

func (uc *UseCase) transition(ctx context.Context, storeID, orderID, op string, apply func(*entity.RestockOrder, time.Time) error) (*dto.RestockOrderResponse, error) {
	var order *entity.RestockOrder
	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		var err error
		order, err = lockOrder(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		if err := apply(order, uc.now()); err != nil {
			return err
		}
		return tx.RestockOrders().UpdateHeader(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("store_id", storeID).Str("order_id", orderID).Str("op", op).
		Str("status", string(order.Status)).Msg("transición de orden de reposición")
	out := dto.FromRestockOrder(order)
	return &out, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func lockOrder(ctx context.Context, tx *inventory.Tx, storeID, orderID string) (*entity.RestockOrder, error) {
	order, err := tx.RestockOrders().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.StoreID != storeID {
		return nil, fmt.Errorf("%s %s: %w", resourceName, orderID, domain.ErrNotFound)
	}
	return order, nil
}

func findOrder(ctx context.Context, tx *inventory.Tx, storeID, orderID string) (*entity.RestockOrder, error) {
	order, err := tx.RestockOrders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.StoreID != storeID {
		return nil, fmt.Errorf("%s %s: %w", resourceName, orderID, domain.ErrNotFound)
	}
	return order, nil
}

func checkSupplier(ctx context.Context, tx *inventory.Tx, storeID, supplierID string) error {
	sup, err := tx.Suppliers().GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if sup == nil || sup.StoreID != storeID {
		return fmt.Errorf("proveedor %s: %w", supplierID, domain.ErrNotFound)
	}
	return nil
}

func buildItems(ctx context.Context, tx *inventory.Tx, storeID, orderID string, in []dto.RestockOrderItemRequest) ([]entity.RestockOrderItem, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("items", "se requiere al menos una línea")
	}
	items := make([]entity.RestockOrderItem, 0, len(in))
	for i, line := range in {
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		if line.Cost.IsNegative() {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].cost", i), "no puede ser negativo")
		}
		p, err := tx.Products().GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.StoreID != storeID {
			return nil, fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
		}
		items = append(items, entity.RestockOrderItem{
			ID:             uuid.New().String(),
			RestockOrderID: orderID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			Cost:           line.Cost,
		})
	}
	return items, nil
}

func validateShipping(v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError("shipping_cost", "no puede ser negativo")
	}
	return nil
}

// orderNumber OC-AAAAMMDD-<8 primeros caracteres del id>.
func orderNumber(now time.Time, id string) string {
	return fmt.Sprintf("OC-%s-%s", now.Format("20060102"), strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8]))
}
