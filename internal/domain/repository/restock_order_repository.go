package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// RestockOrderFilter filtros de listado.
type RestockOrderFilter struct {
	StoreID string
	Status  entity.RestockOrderStatus // vacío = todos
	Limit   int
	Offset  int
}

// RestockOrderRepository puerto de persistencia de órdenes de reposición y sus ítems.
type RestockOrderRepository interface {
	Create(ctx context.Context, order *entity.RestockOrder) error
	GetByID(ctx context.Context, id string) (*entity.RestockOrder, error)
	// GetForUpdate bloquea la orden para serializar recepciones concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.RestockOrder, error)
	List(ctx context.Context, filter RestockOrderFilter) ([]*entity.RestockOrder, error)
	// UpdateHeader persiste proveedor, estado, totales, notas y marcas de tiempo.
	UpdateHeader(ctx context.Context, order *entity.RestockOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.RestockOrderItem) error
	// IncrementReceived suma qty a quantity_received (aditivo, nunca sobrescribe).
	IncrementReceived(ctx context.Context, itemID string, qty int64) error
	Delete(ctx context.Context, id string) error
}
