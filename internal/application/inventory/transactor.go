package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// Tx vista de la unidad de trabajo para los casos de uso.
// StockWriter y MovementRepository.Create quedan ocultos: el único camino para mover stock es Ledger.
type Tx struct {
	uow UnitOfWork
}

// Products repositorio de productos de la transacción (sin escritura de stock).
func (t *Tx) Products() repository.ProductRepository { return t.uow.Products() }

// Movements lectura del ledger dentro de la transacción.
func (t *Tx) Movements() repository.MovementReader { return t.uow.Movements() }

// RestockOrders repositorio de órdenes de reposición de la transacción.
func (t *Tx) RestockOrders() repository.RestockOrderRepository { return t.uow.RestockOrders() }

// Suppliers lectura de proveedores.
func (t *Tx) Suppliers() repository.SupplierRepository { return t.uow.Suppliers() }

// Transactor abre transacciones y entrega *Tx a los casos de uso.
type Transactor struct {
	runner TxRunner
}

// NewTransactor construye el transactor sobre un TxRunner (postgres o memoria).
func NewTransactor(runner TxRunner) *Transactor {
	return &Transactor{runner: runner}
}

// Do ejecuta fn en una transacción; la composición de varios pasos (recepción, lotes) comparte el mismo *Tx.
func (t *Transactor) Do(ctx context.Context, fn func(tx *Tx) error) error {
	return t.runner.Run(ctx, func(uow UnitOfWork) error {
		return fn(&Tx{uow: uow})
	})
}
