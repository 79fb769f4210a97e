package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

const (
	storeID = "store-1"
	userID  = "user-1"
)

// fakeClock avanza un segundo por lectura para que createdAt sea estrictamente creciente.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store  *memory.Store
	tx     *inventory.Transactor
	ledger *inventory.Ledger
	clock  *fakeClock
}

func newFixture(products ...entity.Product) *fixture {
	st := memory.NewStore()
	for _, p := range products {
		st.SeedProduct(p)
	}
	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	tx := inventory.NewTransactor(st)
	return &fixture{
		store:  st,
		tx:     tx,
		ledger: inventory.NewLedger(tx, logger.Nop(), inventory.WithClock(clock.Now)),
		clock:  clock,
	}
}

func product(id string, stock int64) entity.Product {
	return entity.Product{ID: id, StoreID: storeID, SKU: "SKU-" + id, Name: "Producto " + id, Stock: stock}
}

func params(productID string, t entity.MovementType, qty int64) inventory.MovementParams {
	return inventory.MovementParams{
		StoreID:   storeID,
		ProductID: productID,
		Type:      t,
		Quantity:  qty,
		Reason:    "conteo físico",
		CreatedBy: userID,
	}
}

func TestApply_MermaDescuentaStock(t *testing.T) {
	f := newFixture(product("p1", 10))

	mov, err := f.ledger.Apply(context.Background(), params("p1", entity.MovementTypeDamage, 3))
	require.NoError(t, err)

	assert.Equal(t, int64(-3), mov.Quantity)
	assert.Equal(t, int64(10), mov.PreviousStock)
	assert.Equal(t, int64(7), mov.NewStock)
	assert.True(t, mov.IsConsistent())

	p, _ := f.store.Product("p1")
	assert.Equal(t, int64(7), p.Stock)
	assert.Len(t, f.store.Movements("p1"), 1)
}

func TestApply_SignoSegunTipo(t *testing.T) {
	cases := []struct {
		typ  entity.MovementType
		qty  int64
		want int64
	}{
		{entity.MovementTypeLost, -2, 8},
		{entity.MovementTypeReturn, -2, 12},
		{entity.MovementTypePurchase, 5, 15},
		{entity.MovementTypeManualAdjustment, -4, 6},
		{entity.MovementTypeManualAdjustment, 4, 14},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			f := newFixture(product("p1", 10))
			mov, err := f.ledger.Apply(context.Background(), params("p1", tc.typ, tc.qty))
			require.NoError(t, err)
			assert.Equal(t, tc.want, mov.NewStock)
		})
	}
}

func TestApply_StockNegativoPermitido(t *testing.T) {
	f := newFixture(product("p1", 1))

	mov, err := f.ledger.Apply(context.Background(), params("p1", entity.MovementTypeLost, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(-4), mov.NewStock)
}

func TestApply_Validaciones(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(p *inventory.MovementParams)
		field string
	}{
		{"cantidad cero", func(p *inventory.MovementParams) { p.Quantity = 0 }, "quantity"},
		{"motivo vacío", func(p *inventory.MovementParams) { p.Reason = "   " }, "reason"},
		{"tipo desconocido", func(p *inventory.MovementParams) { p.Type = "THEFT" }, "type"},
		{"sin producto", func(p *inventory.MovementParams) { p.ProductID = "" }, "product_id"},
		{"magnitud mínima de int64", func(p *inventory.MovementParams) {
			p.Type = entity.MovementTypePurchase
			p.Quantity = math.MinInt64
		}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(product("p1", 10))
			p := params("p1", entity.MovementTypeDamage, 1)
			tc.mut(&p)

			_, err := f.ledger.Apply(context.Background(), p)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			got, _ := f.store.Product("p1")
			assert.Equal(t, int64(10), got.Stock)
			assert.Zero(t, f.store.MovementCount())
		})
	}
}

func TestApply_DesbordamientoDeStock(t *testing.T) {
	cases := []struct {
		name  string
		stock int64
		typ   entity.MovementType
		qty   int64
	}{
		{"ajuste sobre el máximo", 10, entity.MovementTypeManualAdjustment, math.MaxInt64},
		{"compra sobre el máximo", math.MaxInt64 - 1, entity.MovementTypePurchase, 2},
		{"ajuste bajo el mínimo", -10, entity.MovementTypeManualAdjustment, -math.MaxInt64},
		{"merma bajo el mínimo", math.MinInt64 + 1, entity.MovementTypeDamage, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(product("p1", tc.stock))

			_, err := f.ledger.Apply(context.Background(), params("p1", tc.typ, tc.qty))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "quantity", ve.Field)

			got, _ := f.store.Product("p1")
			assert.Equal(t, tc.stock, got.Stock)
			assert.Zero(t, f.store.MovementCount())
		})
	}
}

func TestApply_LimiteExactoDeStock(t *testing.T) {
	f := newFixture(product("p1", math.MaxInt64-5))

	mov, err := f.ledger.Apply(context.Background(), params("p1", entity.MovementTypePurchase, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), mov.NewStock)
	assert.True(t, mov.IsConsistent())
}

func TestApply_ProductoDeOtraTienda(t *testing.T) {
	other := product("p1", 10)
	other.StoreID = "store-2"
	f := newFixture(other)

	_, err := f.ledger.Apply(context.Background(), params("p1", entity.MovementTypeDamage, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyBatch_AtomicidadAnteFallo(t *testing.T) {
	f := newFixture(product("p1", 10), product("p2", 20))

	batch := []inventory.MovementParams{
		params("p1", entity.MovementTypeDamage, 1),
		params("p2", entity.MovementTypeDamage, 1),
		params("no-existe", entity.MovementTypeDamage, 1),
	}
	_, err := f.ledger.ApplyBatch(context.Background(), batch)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "línea 2")

	p1, _ := f.store.Product("p1")
	p2, _ := f.store.Product("p2")
	assert.Equal(t, int64(10), p1.Stock)
	assert.Equal(t, int64(20), p2.Stock)
	assert.Zero(t, f.store.MovementCount())
}

func TestApplyBatch_ValidaAntesDeEscribir(t *testing.T) {
	f := newFixture(product("p1", 10))

	bad := params("p1", entity.MovementTypeDamage, 0)
	_, err := f.ledger.ApplyBatch(context.Background(), []inventory.MovementParams{
		params("p1", entity.MovementTypeDamage, 1),
		bad,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.MovementCount())
}

func TestApplyBatch_Vacio(t *testing.T) {
	f := newFixture(product("p1", 10))
	_, err := f.ledger.ApplyBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyBatch_MismoProductoEncadenaFotos(t *testing.T) {
	f := newFixture(product("p1", 10))

	movs, err := f.ledger.ApplyBatch(context.Background(), []inventory.MovementParams{
		params("p1", entity.MovementTypeDamage, 2),
		params("p1", entity.MovementTypePurchase, 5),
		params("p1", entity.MovementTypeStoreUse, 1),
	})
	require.NoError(t, err)
	require.Len(t, movs, 3)

	// cada movimiento ve el stock dejado por el anterior; nunca se fusionan
	assert.Equal(t, int64(10), movs[0].PreviousStock)
	assert.Equal(t, movs[0].NewStock, movs[1].PreviousStock)
	assert.Equal(t, movs[1].NewStock, movs[2].PreviousStock)
	assert.Equal(t, int64(12), movs[2].NewStock)

	p, _ := f.store.Product("p1")
	assert.Equal(t, int64(12), p.Stock)
}

func TestLedger_StockIgualASumaDeMovimientos(t *testing.T) {
	f := newFixture(product("p1", 0))
	ctx := context.Background()

	steps := []inventory.MovementParams{
		params("p1", entity.MovementTypeInitialIntake, 50),
		params("p1", entity.MovementTypeDamage, 3),
		params("p1", entity.MovementTypeReturn, 2),
		params("p1", entity.MovementTypeManualAdjustment, -9),
		params("p1", entity.MovementTypePromotion, 4),
	}
	for _, s := range steps {
		_, err := f.ledger.Apply(ctx, s)
		require.NoError(t, err)
	}

	var sum int64
	for _, m := range f.store.Movements("p1") {
		assert.True(t, m.IsConsistent())
		sum += m.Quantity
	}
	p, _ := f.store.Product("p1")
	assert.Equal(t, sum, p.Stock)
	assert.Equal(t, int64(36), p.Stock)
}

func TestStockAt_ReproduceHastaElInstante(t *testing.T) {
	f := newFixture(product("p1", 10))
	ctx := context.Background()

	_, err := f.ledger.Apply(ctx, params("p1", entity.MovementTypePurchase, 5))
	require.NoError(t, err)
	cut := f.clock.t
	_, err = f.ledger.Apply(ctx, params("p1", entity.MovementTypeDamage, 7))
	require.NoError(t, err)

	at, err := f.ledger.StockAt(ctx, storeID, "p1", cut)
	require.NoError(t, err)
	assert.Equal(t, int64(15), at)

	now, err := f.ledger.StockAt(ctx, storeID, "p1", f.clock.t)
	require.NoError(t, err)
	assert.Equal(t, int64(8), now)

	before, err := f.ledger.StockAt(ctx, storeID, "p1", cut.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, before)
}

func TestProductHistory_MasRecientesPrimero(t *testing.T) {
	f := newFixture(product("p1", 10))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.ledger.Apply(ctx, params("p1", entity.MovementTypeDamage, 1))
		require.NoError(t, err)
	}

	list, err := f.ledger.ProductHistory(ctx, storeID, "p1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(7), list[0].NewStock)
	assert.Equal(t, int64(8), list[1].NewStock)

	_, err = f.ledger.ProductHistory(ctx, "store-2", "p1", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_FalloDeCommitNoDejaRastro(t *testing.T) {
	f := newFixture(product("p1", 10))
	f.store.FailNextCommit(domain.NewStorageError("commit", errors.New("conexión cerrada")))

	_, err := f.ledger.Apply(context.Background(), params("p1", entity.MovementTypeDamage, 3))
	require.ErrorIs(t, err, domain.ErrStorage)

	p, _ := f.store.Product("p1")
	assert.Equal(t, int64(10), p.Stock)
	assert.Zero(t, f.store.MovementCount())
}

func TestReplay(t *testing.T) {
	assert.Zero(t, inventory.Replay(nil))
	movs := []*entity.Movement{
		{PreviousStock: 4, Quantity: 6, NewStock: 10},
		{PreviousStock: 10, Quantity: -3, NewStock: 7},
	}
	assert.Equal(t, int64(7), inventory.Replay(movs))
}
