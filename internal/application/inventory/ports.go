package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// UnitOfWork repositorios atados a una misma transacción de BD.
type UnitOfWork interface {
	Products() repository.ProductRepository
	Stock() repository.StockWriter
	Movements() repository.MovementRepository
	RestockOrders() repository.RestockOrderRepository
	Suppliers() repository.SupplierRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso. La implementación debe dar bloqueo
// de fila en SELECT FOR UPDATE (o aislamiento serializable) para que el ledger sea correcto.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
