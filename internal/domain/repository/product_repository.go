package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// No expone escritura de Stock: esa operación vive en StockWriter y solo la recibe el Ledger Writer.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error)
	UpdateAcqPrice(ctx context.Context, id string, acqPrice decimal.Decimal) error
	// SetClassification etiqueta en bloque los productos indicados de la tienda. Devuelve filas afectadas.
	SetClassification(ctx context.Context, storeID string, productIDs []string, class entity.AbcClass) (int64, error)
	// SetClassificationExcept etiqueta todos los productos de la tienda salvo los excluidos.
	SetClassificationExcept(ctx context.Context, storeID string, excluded []string, class entity.AbcClass) (int64, error)
}

// StockWriter escritura del stock materializado de un producto.
// Solo el Ledger Writer lo usa, después de persistir el movimiento correspondiente.
type StockWriter interface {
	SetStock(ctx context.Context, productID string, stock int64) error
}
