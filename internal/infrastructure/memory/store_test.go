package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	st := memory.NewStore()
	st.SeedProduct(entity.Product{ID: "p1", StoreID: "s1", Stock: 10})

	boom := errors.New("boom")
	err := st.Run(context.Background(), func(uow inventory.UnitOfWork) error {
		require.NoError(t, uow.Stock().SetStock(context.Background(), "p1", 99))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := st.Product("p1")
	assert.Equal(t, int64(10), p.Stock)
}

func TestRun_CommitPersiste(t *testing.T) {
	st := memory.NewStore()
	st.SeedProduct(entity.Product{ID: "p1", StoreID: "s1", Stock: 10})

	err := st.Run(context.Background(), func(uow inventory.UnitOfWork) error {
		return uow.Stock().SetStock(context.Background(), "p1", 4)
	})
	require.NoError(t, err)

	p, _ := st.Product("p1")
	assert.Equal(t, int64(4), p.Stock)
	assert.Equal(t, entity.AbcClassC, p.AbcClassification)
}

func TestFailNextCommit(t *testing.T) {
	st := memory.NewStore()
	st.SeedProduct(entity.Product{ID: "p1", StoreID: "s1", Stock: 10})
	st.FailNextCommit(domain.NewStorageError("commit", errors.New("conexión perdida")))

	err := st.Run(context.Background(), func(uow inventory.UnitOfWork) error {
		return uow.Stock().SetStock(context.Background(), "p1", 1)
	})
	require.ErrorIs(t, err, domain.ErrStorage)
	p, _ := st.Product("p1")
	assert.Equal(t, int64(10), p.Stock)

	// solo la siguiente transacción falla
	require.NoError(t, st.Run(context.Background(), func(uow inventory.UnitOfWork) error {
		return uow.Stock().SetStock(context.Background(), "p1", 1)
	}))
}

func TestMovements_MigracionInicialUnicaPorProducto(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	mov := &entity.Movement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeInitialMigration, Quantity: 5, NewStock: 5}

	err := st.Run(ctx, func(uow inventory.UnitOfWork) error {
		require.NoError(t, uow.Movements().Create(ctx, mov))
		dup := *mov
		dup.ID = "m2"
		return uow.Movements().Create(ctx, &dup)
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Zero(t, st.MovementCount())
}

func TestMovements_OrdenYPaginacion(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.Run(ctx, func(uow inventory.UnitOfWork) error {
		for i := 0; i < 3; i++ {
			m := &entity.Movement{
				ID:        string(rune('a' + i)),
				ProductID: "p1",
				Type:      entity.MovementTypePurchase,
				Quantity:  1,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
			if err := uow.Movements().Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, st.Run(ctx, func(uow inventory.UnitOfWork) error {
		page, err := uow.Movements().ListByProduct(ctx, "p1", 2, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "c", page[0].ID)
		assert.Equal(t, "b", page[1].ID)

		rest, err := uow.Movements().ListByProduct(ctx, "p1", 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "a", rest[0].ID)

		until, err := uow.Movements().ListByProductUntil(ctx, "p1", base.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, until, 2)
		assert.Equal(t, "a", until[0].ID)
		return nil
	}))
}

func TestOrders_IncrementReceivedEsAditivo(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	order := &entity.RestockOrder{
		ID: "o1", StoreID: "s1", OrderNumber: "OC-1", Status: entity.RestockStatusOrdered,
		Items: []entity.RestockOrderItem{{ID: "i1", ProductID: "p1", Quantity: 100, Cost: decimal.NewFromInt(10)}},
	}

	require.NoError(t, st.Run(ctx, func(uow inventory.UnitOfWork) error {
		if err := uow.RestockOrders().Create(ctx, order); err != nil {
			return err
		}
		if err := uow.RestockOrders().IncrementReceived(ctx, "i1", 40); err != nil {
			return err
		}
		return uow.RestockOrders().IncrementReceived(ctx, "i1", 60)
	}))

	require.NoError(t, st.Run(ctx, func(uow inventory.UnitOfWork) error {
		got, err := uow.RestockOrders().GetByID(ctx, "o1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(100), got.Items[0].QuantityReceived)

		missing, err := uow.RestockOrders().GetByID(ctx, "nope")
		assert.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	}))
	// la orden original no se comparte con el almacenamiento
	assert.Zero(t, order.Items[0].QuantityReceived)
}

func TestGetProfitRanking_AtribucionProporcional(t *testing.T) {
	st := memory.NewStore()
	now := time.Now()
	st.SeedSale(entity.SaleRecord{
		ID: "v1", StoreID: "s1", Subtotal: decimal.NewFromInt(100), NetProfit: decimal.NewFromInt(30), CreatedAt: now,
		Lines: []entity.SaleLine{
			{ProductID: "p1", Revenue: decimal.NewFromInt(75)},
			{ProductID: "p2", Revenue: decimal.NewFromInt(25)},
		},
	})
	st.SeedSale(entity.SaleRecord{
		ID: "v-vieja", StoreID: "s1", Subtotal: decimal.NewFromInt(10), NetProfit: decimal.NewFromInt(10),
		CreatedAt: now.AddDate(0, -6, 0),
		Lines:     []entity.SaleLine{{ProductID: "p2", Revenue: decimal.NewFromInt(10)}},
	})

	rows, err := st.GetProfitRanking(context.Background(), "s1", now.AddDate(0, 0, -90))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "p1", rows[0].ProductID)
	assert.True(t, decimal.RequireFromString("22.5").Equal(rows[0].TotalProfit), "profit=%s", rows[0].TotalProfit)
	assert.True(t, decimal.RequireFromString("7.5").Equal(rows[1].TotalProfit))
}
