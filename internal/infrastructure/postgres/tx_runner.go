package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// READ COMMITTED alcanza: cada lectura de stock previa a una escritura usa SELECT ... FOR UPDATE.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&unitOfWork{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NewStorageError("commit transaction", err)
	}
	return nil
}

type unitOfWork struct {
	q Querier
}

func (u *unitOfWork) Products() repository.ProductRepository           { return NewProductRepository(u.q) }
func (u *unitOfWork) Stock() repository.StockWriter                    { return NewProductRepository(u.q) }
func (u *unitOfWork) Movements() repository.MovementRepository         { return NewMovementRepository(u.q) }
func (u *unitOfWork) RestockOrders() repository.RestockOrderRepository { return NewRestockOrderRepository(u.q) }
func (u *unitOfWork) Suppliers() repository.SupplierRepository         { return NewSupplierRepository(u.q) }
