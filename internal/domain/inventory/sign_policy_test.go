package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

func TestNormalizeQuantity_ForzadosNegativos(t *testing.T) {
	for _, typ := range []entity.MovementType{
		entity.MovementTypeDamage, entity.MovementTypeLost, entity.MovementTypeStoreUse, entity.MovementTypePromotion,
	} {
		for _, m := range []int64{3, -3} {
			q, err := inventory.NormalizeQuantity(typ, m)
			require.NoError(t, err)
			assert.Equal(t, int64(-3), q, "%s con magnitud %d", typ, m)
		}
	}
}

func TestNormalizeQuantity_ForzadosPositivos(t *testing.T) {
	for _, typ := range []entity.MovementType{
		entity.MovementTypeReturn, entity.MovementTypePurchase, entity.MovementTypeInitialIntake,
		entity.MovementTypeRestockReceived, entity.MovementTypeInitialMigration,
	} {
		for _, m := range []int64{8, -8} {
			q, err := inventory.NormalizeQuantity(typ, m)
			require.NoError(t, err)
			assert.Equal(t, int64(8), q, "%s con magnitud %d", typ, m)
		}
	}
}

func TestNormalizeQuantity_AjusteManualRespetaSigno(t *testing.T) {
	q, err := inventory.NormalizeQuantity(entity.MovementTypeManualAdjustment, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(-4), q)

	q, err = inventory.NormalizeQuantity(entity.MovementTypeManualAdjustment, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), q)
}

func TestNormalizeQuantity_OrderPlacedNegativo(t *testing.T) {
	q, err := inventory.NormalizeQuantity(entity.MovementTypeOrderPlaced, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), q)
}

func TestNormalizeQuantity_MagnitudFueraDeRango(t *testing.T) {
	for _, typ := range entity.MovementTypes {
		_, err := inventory.NormalizeQuantity(typ, math.MinInt64)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, typ)
		assert.Equal(t, "quantity", ve.Field)
	}

	q, err := inventory.NormalizeQuantity(entity.MovementTypePurchase, math.MinInt64+1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), q)

	q, err = inventory.NormalizeQuantity(entity.MovementTypeDamage, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(-math.MaxInt64), q)
}

func TestRuleFor_TipoDesconocido(t *testing.T) {
	_, err := inventory.RuleFor(entity.MovementType("THEFT"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRuleFor_CubreTodosLosTipos(t *testing.T) {
	for _, typ := range entity.MovementTypes {
		rule, err := inventory.RuleFor(typ)
		require.NoError(t, err, typ)
		assert.NotEqual(t, "unknown", rule.String())
	}
}

func TestUserAdjustable(t *testing.T) {
	assert.True(t, inventory.UserAdjustable(entity.MovementTypeDamage))
	assert.True(t, inventory.UserAdjustable(entity.MovementTypeManualAdjustment))
	assert.False(t, inventory.UserAdjustable(entity.MovementTypeOrderPlaced))
	assert.False(t, inventory.UserAdjustable(entity.MovementTypeRestockReceived))
	assert.False(t, inventory.UserAdjustable(entity.MovementTypeInitialMigration))
	assert.False(t, inventory.UserAdjustable(entity.MovementType("nope")))
}
