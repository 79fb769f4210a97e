package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

func ranking(id, revenue, profit string) entity.ProfitRanking {
	return entity.ProfitRanking{ProductID: id, TotalRevenue: dec(revenue), TotalProfit: dec(profit)}
}

func TestClassifyABC_ProductoConOchentaPorCiento(t *testing.T) {
	classes := inventory.ClassifyABC([]entity.ProfitRanking{
		ranking("p1", "1000", "800"),
		ranking("p2", "500", "150"),
		ranking("p3", "300", "50"),
	}, inventory.DefaultAbcThresholds())

	assert.Equal(t, entity.AbcClassA, classes["p1"])
	assert.Equal(t, entity.AbcClassB, classes["p2"]) // 95%
	assert.Equal(t, entity.AbcClassC, classes["p3"]) // 100%
}

func TestClassifyABC_UtilidadNoPositivaSiempreC(t *testing.T) {
	classes := inventory.ClassifyABC([]entity.ProfitRanking{
		ranking("top-revenue", "999999", "-10"),
		ranking("zero", "5000", "0"),
		ranking("p1", "10", "100"),
	}, inventory.DefaultAbcThresholds())

	assert.Equal(t, entity.AbcClassC, classes["top-revenue"])
	assert.Equal(t, entity.AbcClassC, classes["zero"])
	// único positivo: su participación acumulada es 100%, por encima del corte B
	assert.Equal(t, entity.AbcClassC, classes["p1"])
}

func TestClassifyABC_SinUtilidadPositiva(t *testing.T) {
	classes := inventory.ClassifyABC([]entity.ProfitRanking{
		ranking("a", "10", "-1"),
		ranking("b", "10", "0"),
	}, inventory.DefaultAbcThresholds())

	assert.Equal(t, entity.AbcClassC, classes["a"])
	assert.Equal(t, entity.AbcClassC, classes["b"])
}

func TestClassifyABC_OrdenIndependienteDeEntrada(t *testing.T) {
	in := []entity.ProfitRanking{
		ranking("c", "1", "10"),
		ranking("a", "1", "70"),
		ranking("b", "1", "20"),
	}
	classes := inventory.ClassifyABC(in, inventory.DefaultAbcThresholds())

	assert.Equal(t, entity.AbcClassA, classes["a"]) // 70%
	assert.Equal(t, entity.AbcClassB, classes["b"]) // 90%
	assert.Equal(t, entity.AbcClassC, classes["c"]) // 100%
	assert.Equal(t, "c", in[0].ProductID, "no muta la entrada")
}

func TestAttributeLineProfit(t *testing.T) {
	got := inventory.AttributeLineProfit(dec("300"), dec("250"), dec("1000"))
	assert.True(t, dec("75").Equal(got), "got=%s", got)

	assert.True(t, decimal.Zero.Equal(inventory.AttributeLineProfit(dec("300"), dec("250"), decimal.Zero)))
}
