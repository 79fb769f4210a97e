package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

type unitOfWork struct {
	st *state
}

func (u *unitOfWork) Products() repository.ProductRepository           { return productRepo{u.st} }
func (u *unitOfWork) Stock() repository.StockWriter                    { return productRepo{u.st} }
func (u *unitOfWork) Movements() repository.MovementRepository         { return movementRepo{u.st} }
func (u *unitOfWork) RestockOrders() repository.RestockOrderRepository { return orderRepo{u.st} }
func (u *unitOfWork) Suppliers() repository.SupplierRepository         { return supplierRepo{u.st} }

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct{ st *state }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria la transacción ya es exclusiva.
func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.st.products {
		if p.StoreID == storeID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r productRepo) UpdateAcqPrice(_ context.Context, id string, acqPrice decimal.Decimal) error {
	p, ok := r.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.AcqPrice = acqPrice
	p.UpdatedAt = time.Now()
	r.st.products[id] = p
	return nil
}

func (r productRepo) SetClassification(_ context.Context, storeID string, productIDs []string, class entity.AbcClass) (int64, error) {
	var n int64
	for _, id := range productIDs {
		p, ok := r.st.products[id]
		if !ok || p.StoreID != storeID {
			continue
		}
		p.AbcClassification = class
		r.st.products[id] = p
		n++
	}
	return n, nil
}

func (r productRepo) SetClassificationExcept(_ context.Context, storeID string, excluded []string, class entity.AbcClass) (int64, error) {
	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}
	var n int64
	for id, p := range r.st.products {
		if p.StoreID != storeID {
			continue
		}
		if _, ok := skip[id]; ok {
			continue
		}
		p.AbcClassification = class
		r.st.products[id] = p
		n++
	}
	return n, nil
}

func (r productRepo) SetStock(_ context.Context, productID string, stock int64) error {
	p, ok := r.st.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.st.products[productID] = p
	return nil
}

// ── ledger ───────────────────────────────────────────────────────────────────

type movementRepo struct{ st *state }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.Type == entity.MovementTypeInitialMigration {
		for _, existing := range r.st.movements {
			if existing.ProductID == m.ProductID && existing.Type == entity.MovementTypeInitialMigration {
				return domain.ErrDuplicate
			}
		}
	}
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.st.movements {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r movementRepo) ExistsForProduct(_ context.Context, productID string, t entity.MovementType) (bool, error) {
	for _, m := range r.st.movements {
		if m.ProductID == productID && m.Type == t {
			return true, nil
		}
	}
	return false, nil
}

// ListByProduct más recientes primero.
func (r movementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	var all []*entity.Movement
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		if m := r.st.movements[i]; m.ProductID == productID {
			all = append(all, &m)
		}
	}
	return paginate(all, limit, offset), nil
}

func (r movementRepo) ListByProductUntil(_ context.Context, productID string, until time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.st.movements {
		if m.ProductID == productID && !m.CreatedAt.After(until) {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r movementRepo) ListByReference(_ context.Context, referenceID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.st.movements {
		if m.ReferenceID != nil && *m.ReferenceID == referenceID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

// ── órdenes de reposición ────────────────────────────────────────────────────

type orderRepo struct{ st *state }

func (r orderRepo) Create(_ context.Context, o *entity.RestockOrder) error {
	if _, ok := r.st.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.st.orders {
		if existing.StoreID == o.StoreID && existing.OrderNumber == o.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.st.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.RestockOrder, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, nil
	}
	c := copyOrder(o)
	return &c, nil
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.RestockOrder, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) List(_ context.Context, f repository.RestockOrderFilter) ([]*entity.RestockOrder, error) {
	var all []*entity.RestockOrder
	for _, o := range r.st.orders {
		if o.StoreID != f.StoreID || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		c := copyOrder(o)
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, f.Limit, f.Offset), nil
}

func (r orderRepo) UpdateHeader(_ context.Context, o *entity.RestockOrder) error {
	cur, ok := r.st.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	items := cur.Items
	next := copyOrder(*o)
	next.Items = items
	r.st.orders[o.ID] = next
	return nil
}

func (r orderRepo) ReplaceItems(_ context.Context, orderID string, items []entity.RestockOrderItem) error {
	cur, ok := r.st.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Items = make([]entity.RestockOrderItem, len(items))
	copy(cur.Items, items)
	r.st.orders[orderID] = cur
	return nil
}

func (r orderRepo) IncrementReceived(_ context.Context, itemID string, qty int64) error {
	for id, o := range r.st.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].QuantityReceived += qty
				r.st.orders[id] = o
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.st.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.orders, id)
	return nil
}

// ── proveedores ──────────────────────────────────────────────────────────────

type supplierRepo struct{ st *state }

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
