package restock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/restock"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

func receive(itemID string, qty int64) restock.ReceiveLine {
	return restock.ReceiveLine{ItemID: itemID, Quantity: qty}
}

func TestReceive_ParcialLuegoCompleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.ordered(t, "0", line("p1", 100, "1000"))
	itemID := o.Items[0].ID

	first, err := f.uc.Receive(ctx, storeID, userID, o.ID, []restock.ReceiveLine{receive(itemID, 40)})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusPartiallyReceived, first.Order.Status)
	assert.Equal(t, int64(40), first.Order.Items[0].QuantityReceived)
	p, _ := f.store.Product("p1")
	assert.Equal(t, int64(40), p.Stock)

	second, err := f.uc.Receive(ctx, storeID, userID, o.ID, []restock.ReceiveLine{receive(itemID, 60)})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusCompleted, second.Order.Status)
	assert.NotNil(t, second.Order.CompletedAt)
	assert.Equal(t, int64(100), second.Order.Items[0].QuantityReceived)
	p, _ = f.store.Product("p1")
	assert.Equal(t, int64(100), p.Stock)

	movs := f.store.Movements("p1")
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeRestockReceived, m.Type)
		require.NotNil(t, m.ReferenceID)
		assert.Equal(t, o.ID, *m.ReferenceID)
		assert.Equal(t, "Recepción de orden "+o.OrderNumber, m.Reason)
	}
}

func TestReceive_CostoLandedConFlete(t *testing.T) {
	f := newFixture(t)
	o := f.ordered(t, "50000", line("p1", 1000, "1000"))

	res, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{receive(o.Items[0].ID, 1000)})
	require.NoError(t, err)
	require.Len(t, res.Movements, 1)

	mov := res.Movements[0]
	require.NotNil(t, mov.Cost)
	assert.True(t, dec("1050").Equal(*mov.Cost), "landed=%s", mov.Cost)
	assert.Equal(t, int64(1000), mov.Quantity)

	p, _ := f.store.Product("p1")
	assert.True(t, dec("1050").Equal(p.AcqPrice), "acq=%s", p.AcqPrice)
}

func TestReceive_CostoDeFacturaReemplazaAlOrdenado(t *testing.T) {
	f := newFixture(t)
	o := f.ordered(t, "50000", line("p1", 1000, "1000"))
	override := dec("1200")

	res, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{
		{ItemID: o.Items[0].ID, Quantity: 10, CostOverride: &override},
	})
	require.NoError(t, err)
	assert.True(t, dec("1260").Equal(*res.Movements[0].Cost))
}

func TestReceive_SinFleteConEstrategiaAlterna(t *testing.T) {
	f := newFixture(t, restock.WithFreightAllocator(domaininv.NoFreight))
	o := f.ordered(t, "50000", line("p1", 1000, "1000"))

	res, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{receive(o.Items[0].ID, 5)})
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(*res.Movements[0].Cost))
}

func TestReceive_CostoPromedioPonderado(t *testing.T) {
	f := newFixture(t)
	f.store.SeedProduct(entity.Product{ID: "p3", StoreID: storeID, Name: "Aceite", Stock: 10, AcqPrice: dec("100")})
	o := f.ordered(t, "0", line("p3", 10, "200"))

	_, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{receive(o.Items[0].ID, 10)})
	require.NoError(t, err)

	p, _ := f.store.Product("p3")
	assert.Equal(t, int64(20), p.Stock)
	assert.True(t, dec("150").Equal(p.AcqPrice), "acq=%s", p.AcqPrice)
}

func TestReceive_MismaLineaDosVecesEncadena(t *testing.T) {
	f := newFixture(t)
	o := f.ordered(t, "0", line("p1", 10, "100"))
	itemID := o.Items[0].ID

	res, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{receive(itemID, 4), receive(itemID, 6)})
	require.NoError(t, err)
	require.Len(t, res.Movements, 2)
	assert.Equal(t, res.Movements[0].NewStock, res.Movements[1].PreviousStock)
	assert.Equal(t, int64(10), res.Order.Items[0].QuantityReceived)
	assert.Equal(t, entity.RestockStatusCompleted, res.Order.Status)
}

func TestReceive_SobreRecepcionTrasCompletar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.ordered(t, "0", line("p1", 100, "1000"))
	itemID := o.Items[0].ID

	_, err := f.uc.Receive(ctx, storeID, userID, o.ID, []restock.ReceiveLine{receive(itemID, 100)})
	require.NoError(t, err)

	extra, err := f.uc.Receive(ctx, storeID, userID, o.ID, []restock.ReceiveLine{receive(itemID, 5)})
	require.NoError(t, err)
	assert.Equal(t, entity.RestockStatusCompleted, extra.Order.Status)
	assert.Equal(t, int64(105), extra.Order.Items[0].QuantityReceived)

	p, _ := f.store.Product("p1")
	assert.Equal(t, int64(105), p.Stock)
}

func TestReceive_LineasOmitidasSeReportan(t *testing.T) {
	f := newFixture(t)
	o := f.ordered(t, "0", line("p1", 10, "100"), line("p2", 10, "100"))

	res, err := f.uc.Receive(context.Background(), storeID, userID, o.ID, []restock.ReceiveLine{
		receive(o.Items[0].ID, 3),
		receive("item-de-otra-orden", 5),
		receive(o.Items[1].ID, 0),
	})
	require.NoError(t, err)
	assert.Len(t, res.Movements, 1)
	assert.Equal(t, []string{"item-de-otra-orden"}, res.SkippedItemIDs)
	assert.Equal(t, []string{o.Items[1].ID}, res.SkippedNonPositive)
	assert.Equal(t, entity.RestockStatusPartiallyReceived, res.Order.Status)
}

func TestReceive_SinLineasValidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.ordered(t, "0", line("p1", 10, "100"))

	_, err := f.uc.Receive(ctx, storeID, userID, o.ID, []restock.ReceiveLine{
		receive("desconocido", 3),
		receive(o.Items[0].ID, -2),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.MovementCount())

	got, err := f.uc.GetByID(ctx, storeID, o.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Items[0].QuantityReceived)
	assert.Equal(t, string(entity.RestockStatusOrdered), got.Status)
}

func TestReceive_EstadosNoRecibibles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.create(t, "0", line("p1", 10, "100"))
	_, err := f.uc.Receive(ctx, storeID, userID, draft.ID, []restock.ReceiveLine{receive(draft.Items[0].ID, 1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	cancelled := f.ordered(t, "0", line("p1", 10, "100"))
	_, err = f.uc.Cancel(ctx, storeID, cancelled.ID)
	require.NoError(t, err)
	_, err = f.uc.Receive(ctx, storeID, userID, cancelled.ID, []restock.ReceiveLine{receive(cancelled.Items[0].ID, 1)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Receive(ctx, "store-2", userID, cancelled.ID, []restock.ReceiveLine{receive(cancelled.Items[0].ID, 1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Zero(t, f.store.MovementCount())
}
