package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.RestockOrderRepository = (*RestockOrderRepo)(nil)

const restockOrderColumns = `id, store_id, supplier_id, order_number, status, total_amount, shipping_cost,
	notes, created_by, created_at, updated_at, ordered_at, completed_at, cancelled_at`

// RestockOrderRepo órdenes de reposición y sus ítems (usable con pool o tx).
type RestockOrderRepo struct {
	q Querier
}

// NewRestockOrderRepository construye el adaptador.
func NewRestockOrderRepository(q Querier) *RestockOrderRepo {
	return &RestockOrderRepo{q: q}
}

// Create inserta la cabecera y sus ítems.
func (r *RestockOrderRepo) Create(ctx context.Context, o *entity.RestockOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO restock_orders (`+restockOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.StoreID, o.SupplierID, o.OrderNumber, string(o.Status), o.TotalAmount, o.ShippingCost,
		o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt, o.OrderedAt, o.CompletedAt, o.CancelledAt,
	)
	if err != nil {
		return mapError("restock.Create", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

// GetByID obtiene la orden con sus ítems.
func (r *RestockOrderRepo) GetByID(ctx context.Context, id string) (*entity.RestockOrder, error) {
	return r.get(ctx, `SELECT `+restockOrderColumns+` FROM restock_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la orden hasta el fin de la transacción.
func (r *RestockOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.RestockOrder, error) {
	return r.get(ctx, `SELECT `+restockOrderColumns+` FROM restock_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *RestockOrderRepo) get(ctx context.Context, query, id string) (*entity.RestockOrder, error) {
	o, err := scanRestockOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("restock.get", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// List órdenes de la tienda, más recientes primero. Incluye ítems.
func (r *RestockOrderRepo) List(ctx context.Context, f repository.RestockOrderFilter) ([]*entity.RestockOrder, error) {
	var status *string
	if f.Status != "" {
		s := string(f.Status)
		status = &s
	}
	var limit *int
	if f.Limit > 0 {
		limit = &f.Limit
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+restockOrderColumns+` FROM restock_orders
		WHERE store_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`,
		f.StoreID, status, limit, f.Offset)
	if err != nil {
		return nil, mapError("restock.List", err)
	}
	var list []*entity.RestockOrder
	for rows.Next() {
		o, err := scanRestockOrder(rows)
		if err != nil {
			rows.Close()
			return nil, mapError("restock.List scan", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError("restock.List rows", err)
	}
	// los ítems se cargan después de cerrar el cursor: una conexión no admite dos consultas abiertas
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateHeader persiste proveedor, estado, totales, notas y marcas de tiempo.
func (r *RestockOrderRepo) UpdateHeader(ctx context.Context, o *entity.RestockOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE restock_orders SET
		    supplier_id = $2, status = $3, total_amount = $4, shipping_cost = $5, notes = $6,
		    updated_at = $7, ordered_at = $8, completed_at = $9, cancelled_at = $10
		WHERE id = $1`,
		o.ID, o.SupplierID, string(o.Status), o.TotalAmount, o.ShippingCost, o.Notes,
		o.UpdatedAt, o.OrderedAt, o.CompletedAt, o.CancelledAt,
	)
	if err != nil {
		return mapError("restock.UpdateHeader", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems borra y vuelve a insertar las líneas de la orden.
func (r *RestockOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.RestockOrderItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM restock_order_items WHERE restock_order_id = $1`, orderID); err != nil {
		return mapError("restock.ReplaceItems delete", err)
	}
	return r.insertItems(ctx, orderID, items)
}

// IncrementReceived suma qty a quantity_received en SQL: nunca sobrescribe lo ya recibido.
func (r *RestockOrderRepo) IncrementReceived(ctx context.Context, itemID string, qty int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE restock_order_items SET quantity_received = quantity_received + $2 WHERE id = $1`,
		itemID, qty)
	if err != nil {
		return mapError("restock.IncrementReceived", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden; los ítems caen por ON DELETE CASCADE.
func (r *RestockOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM restock_orders WHERE id = $1`, id)
	if err != nil {
		return mapError("restock.Delete", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RestockOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.RestockOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO restock_order_items (id, restock_order_id, product_id, quantity, cost, subtotal, quantity_received, item_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, orderID, it.ProductID, it.Quantity, it.Cost, it.Subtotal, it.QuantityReceived, it.Index)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return mapError("restock.insertItems", err)
		}
	}
	return nil
}

func (r *RestockOrderRepo) items(ctx context.Context, orderID string) ([]entity.RestockOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, restock_order_id, product_id, quantity, cost, subtotal, quantity_received, item_index
		FROM restock_order_items WHERE restock_order_id = $1
		ORDER BY item_index, id`, orderID)
	if err != nil {
		return nil, mapError("restock.items", err)
	}
	defer rows.Close()

	items := []entity.RestockOrderItem{}
	for rows.Next() {
		var it entity.RestockOrderItem
		if err := rows.Scan(&it.ID, &it.RestockOrderID, &it.ProductID, &it.Quantity, &it.Cost,
			&it.Subtotal, &it.QuantityReceived, &it.Index); err != nil {
			return nil, mapError("restock.items scan", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("restock.items rows", err)
	}
	return items, nil
}

func scanRestockOrder(row pgx.Row) (*entity.RestockOrder, error) {
	var o entity.RestockOrder
	var status string
	if err := row.Scan(
		&o.ID, &o.StoreID, &o.SupplierID, &o.OrderNumber, &status, &o.TotalAmount, &o.ShippingCost,
		&o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.OrderedAt, &o.CompletedAt, &o.CancelledAt,
	); err != nil {
		return nil, err
	}
	o.Status = entity.RestockOrderStatus(status)
	return &o, nil
}
