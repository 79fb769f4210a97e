package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.StockWriter       = (*ProductRepo)(nil)
)

const productColumns = `id, store_id, sku, name, stock, acq_price, price, abc_classification, updated_at`

// ProductRepo implementación de ProductRepository y StockWriter sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("product.get", err)
	}
	return p, nil
}

// ListByStore lista los productos de la tienda.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE store_id = $1 ORDER BY id`, storeID)
	if err != nil {
		return nil, mapError("product.ListByStore", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("product.ListByStore scan", err)
		}
		list = append(list, p)
	}
	return list, mapError("product.ListByStore rows", rows.Err())
}

// UpdateAcqPrice actualiza el costo promedio de adquisición.
func (r *ProductRepo) UpdateAcqPrice(ctx context.Context, id string, acqPrice decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET acq_price = $2, updated_at = now() WHERE id = $1`, id, acqPrice)
	if err != nil {
		return mapError("product.UpdateAcqPrice", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetClassification etiqueta en bloque los productos indicados.
func (r *ProductRepo) SetClassification(ctx context.Context, storeID string, productIDs []string, class entity.AbcClass) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET abc_classification = $3, updated_at = now()
		 WHERE store_id = $1 AND id = ANY($2)`,
		storeID, productIDs, string(class))
	if err != nil {
		return 0, mapError("product.SetClassification", err)
	}
	return cmd.RowsAffected(), nil
}

// SetClassificationExcept etiqueta todos los productos de la tienda salvo los excluidos.
func (r *ProductRepo) SetClassificationExcept(ctx context.Context, storeID string, excluded []string, class entity.AbcClass) (int64, error) {
	if excluded == nil {
		excluded = []string{}
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET abc_classification = $3, updated_at = now()
		 WHERE store_id = $1 AND NOT (id = ANY($2))`,
		storeID, excluded, string(class))
	if err != nil {
		return 0, mapError("product.SetClassificationExcept", err)
	}
	return cmd.RowsAffected(), nil
}

// SetStock escribe el stock materializado. Solo lo invoca el Ledger después de insertar el movimiento.
func (r *ProductRepo) SetStock(ctx context.Context, productID string, stock int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, productID, stock)
	if err != nil {
		return mapError("product.SetStock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var class string
	if err := row.Scan(&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.Stock, &p.AcqPrice, &p.Price, &class, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.AbcClassification = entity.AbcClass(class)
	return &p, nil
}
