package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

func newMigration(f *fixture) *inventory.MigrationUseCase {
	return inventory.NewMigrationUseCase(f.tx, f.ledger, f.store, logger.Nop())
}

func TestMigrateInitialStock_AbreLedger(t *testing.T) {
	f := newFixture(product("p1", 0), product("p2", 0), product("p3", 0))
	f.store.SeedLegacyStock(
		entity.LegacyStock{StoreID: storeID, ProductID: "p1", Quantity: 12},
		entity.LegacyStock{StoreID: storeID, ProductID: "p2", Quantity: 0},
		entity.LegacyStock{StoreID: storeID, ProductID: "p3", Quantity: 4},
		entity.LegacyStock{StoreID: "store-2", ProductID: "px", Quantity: 9},
	)

	res, err := newMigration(f).MigrateInitialStock(context.Background(), storeID, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Migrated)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []inventory.MigrationSkip{{ProductID: "p2", Reason: inventory.SkipZeroStock}}, res.Skips)
	assert.Empty(t, res.Errors)

	movs := f.store.Movements("p1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeInitialMigration, movs[0].Type)
	assert.Equal(t, int64(0), movs[0].PreviousStock)
	assert.Equal(t, int64(12), movs[0].NewStock)

	p1, _ := f.store.Product("p1")
	assert.Equal(t, int64(12), p1.Stock)
}

func TestMigrateInitialStock_ReEjecutable(t *testing.T) {
	f := newFixture(product("p1", 0), product("p2", 0))
	f.store.SeedLegacyStock(
		entity.LegacyStock{StoreID: storeID, ProductID: "p1", Quantity: 5},
		entity.LegacyStock{StoreID: storeID, ProductID: "p2", Quantity: 8},
	)
	uc := newMigration(f)
	ctx := context.Background()

	first, err := uc.MigrateInitialStock(ctx, storeID, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Migrated)

	second, err := uc.MigrateInitialStock(ctx, storeID, userID)
	require.NoError(t, err)
	assert.Zero(t, second.Migrated)
	assert.Equal(t, 2, second.Skipped)
	for _, s := range second.Skips {
		assert.Equal(t, inventory.SkipAlreadyMigrated, s.Reason)
	}

	// el stock no se duplica
	p1, _ := f.store.Product("p1")
	assert.Equal(t, int64(5), p1.Stock)
	assert.Equal(t, 2, f.store.MovementCount())
}

func TestMigrateInitialStock_ErroresPorProducto(t *testing.T) {
	f := newFixture(product("p1", 0))
	f.store.SeedLegacyStock(
		entity.LegacyStock{StoreID: storeID, ProductID: "fantasma", Quantity: 3},
		entity.LegacyStock{StoreID: storeID, ProductID: "p1", Quantity: -2},
	)

	res, err := newMigration(f).MigrateInitialStock(context.Background(), storeID, userID)
	require.NoError(t, err)
	assert.Zero(t, res.Migrated)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "fantasma", res.Errors[0].ProductID)
	assert.Equal(t, "p1", res.Errors[1].ProductID)
	assert.Zero(t, f.store.MovementCount())
}

func TestMigrateInitialStock_RequiereTienda(t *testing.T) {
	f := newFixture()
	_, err := newMigration(f).MigrateInitialStock(context.Background(), "", userID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
