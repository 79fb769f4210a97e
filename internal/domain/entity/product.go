package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AbcClass clasificación Pareto de un producto por utilidad acumulada.
type AbcClass string

const (
	AbcClassA AbcClass = "A" // ~80% superior de la utilidad acumulada
	AbcClassB AbcClass = "B" // siguiente ~15%
	AbcClassC AbcClass = "C" // resto, utilidad no positiva o sin ventas
)

// Product representa un producto de una tienda.
// Stock es derivado del ledger: solo lo modifica el Ledger Writer a través de repository.StockWriter.
type Product struct {
	ID                string
	StoreID           string
	SKU               string
	Name              string
	Stock             int64
	AcqPrice          decimal.Decimal // costo de adquisición (promedio ponderado con costo landed)
	Price             decimal.Decimal // precio de venta
	AbcClassification AbcClass
	UpdatedAt         time.Time
}
