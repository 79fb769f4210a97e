// Package memory implementa la unidad de trabajo del motor de inventario en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado:
// si fn devuelve error la copia se descarta (rollback), si no reemplaza al estado (commit).
// Se usa en tests y con STORAGE_DRIVER=memory en desarrollo.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var (
	_ inventory.TxRunner               = (*Store)(nil)
	_ repository.AnalyticsRepository   = (*Store)(nil)
	_ repository.LegacyStockRepository = (*Store)(nil)
)

// Store almacenamiento en memoria.
type Store struct {
	mu       sync.Mutex
	state    *state
	failNext error // ver FailNextCommit
}

type state struct {
	products  map[string]entity.Product
	movements []entity.Movement
	orders    map[string]entity.RestockOrder
	suppliers map[string]entity.Supplier
	legacy    []entity.LegacyStock
	sales     []entity.SaleRecord
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{state: &state{
		products:  map[string]entity.Product{},
		orders:    map[string]entity.RestockOrder{},
		suppliers: map[string]entity.Supplier{},
	}}
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&unitOfWork{st: work}); err != nil {
		return err
	}
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.state = work
	return nil
}

// FailNextCommit hace fallar el commit de la próxima transacción con err.
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// ── Seed y lectura directa (tests, modo desarrollo) ─────────────────────────

// SeedProduct inserta o reemplaza un producto.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.AbcClassification == "" {
		p.AbcClassification = entity.AbcClassC
	}
	s.state.products[p.ID] = p
}

// SeedSupplier inserta o reemplaza un proveedor.
func (s *Store) SeedSupplier(sup entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.suppliers[sup.ID] = sup
}

// SeedLegacyStock agrega existencias heredadas.
func (s *Store) SeedLegacyStock(rows ...entity.LegacyStock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.legacy = append(s.state.legacy, rows...)
}

// SeedSale agrega una orden de venta al modelo de lectura.
func (s *Store) SeedSale(sale entity.SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.sales = append(s.state.sales, sale)
}

// Product devuelve una copia del producto.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p, ok
}

// Movements devuelve los movimientos de un producto en orden de aplicación.
func (s *Store) Movements(productID string) []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Movement
	for _, m := range s.state.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// MovementCount total de filas del ledger.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.movements)
}

// ── repository.LegacyStockRepository ─────────────────────────────────────────

// ListByStore existencias heredadas de la tienda.
func (s *Store) ListByStore(_ context.Context, storeID string) ([]entity.LegacyStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.LegacyStock
	for _, r := range s.state.legacy {
		if r.StoreID == storeID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── repository.AnalyticsRepository ───────────────────────────────────────────

// GetProfitRanking agrega venta y utilidad atribuida por producto desde `since`.
func (s *Store) GetProfitRanking(_ context.Context, storeID string, since time.Time) ([]entity.ProfitRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := map[string]*entity.ProfitRanking{}
	for _, sale := range s.state.sales {
		if sale.StoreID != storeID || sale.CreatedAt.Before(since) {
			continue
		}
		for _, line := range sale.Lines {
			r, ok := byID[line.ProductID]
			if !ok {
				r = &entity.ProfitRanking{ProductID: line.ProductID}
				byID[line.ProductID] = r
			}
			r.TotalRevenue = r.TotalRevenue.Add(line.Revenue)
			r.TotalProfit = r.TotalProfit.Add(domaininv.AttributeLineProfit(sale.NetProfit, line.Revenue, sale.Subtotal))
		}
	}
	out := make([]entity.ProfitRanking, 0, len(byID))
	for _, r := range byID {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalProfit.GreaterThan(out[j].TotalProfit) })
	return out, nil
}

func (st *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(st.products)),
		movements: make([]entity.Movement, len(st.movements)),
		orders:    make(map[string]entity.RestockOrder, len(st.orders)),
		suppliers: st.suppliers,
		legacy:    st.legacy,
		sales:     st.sales,
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	copy(c.movements, st.movements)
	for k, v := range st.orders {
		c.orders[k] = copyOrder(v)
	}
	return c
}

func copyOrder(o entity.RestockOrder) entity.RestockOrder {
	items := make([]entity.RestockOrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
