package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del ledger de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeDamage           MovementType = "DAMAGE"
	MovementTypeLost             MovementType = "LOST"
	MovementTypeStoreUse         MovementType = "STORE_USE"
	MovementTypePromotion        MovementType = "PROMOTION"
	MovementTypeReturn           MovementType = "RETURN"
	MovementTypePurchase         MovementType = "PURCHASE"
	MovementTypeInitialIntake    MovementType = "INITIAL_INTAKE"
	MovementTypeRestockReceived  MovementType = "RESTOCK_RECEIVED"
	MovementTypeInitialMigration MovementType = "INITIAL_MIGRATION"
	MovementTypeManualAdjustment MovementType = "MANUAL_ADJUSTMENT"
	MovementTypeOrderPlaced      MovementType = "ORDER_PLACED"
)

// MovementTypes lista cerrada de tipos válidos.
var MovementTypes = []MovementType{
	MovementTypeDamage,
	MovementTypeLost,
	MovementTypeStoreUse,
	MovementTypePromotion,
	MovementTypeReturn,
	MovementTypePurchase,
	MovementTypeInitialIntake,
	MovementTypeRestockReceived,
	MovementTypeInitialMigration,
	MovementTypeManualAdjustment,
	MovementTypeOrderPlaced,
}

// IsValid indica si el tipo pertenece a la lista cerrada.
func (t MovementType) IsValid() bool {
	for _, v := range MovementTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t MovementType) String() string { return string(t) }

// Movement entrada inmutable del ledger: un cambio de stock con fotos antes/después.
// Invariante: NewStock == PreviousStock + Quantity. Nunca se actualiza ni se borra.
type Movement struct {
	ID            string
	StoreID       string
	ProductID     string
	Type          MovementType
	Quantity      int64 // con signo
	PreviousStock int64
	NewStock      int64
	Reason        string
	Description   *string
	Cost          *decimal.Decimal // costo unitario (landed en recepciones)
	ReferenceID   *string          // orden de compra, orden de venta, etc.
	CreatedBy     string
	CreatedAt     time.Time
}

// IsConsistent verifica la invariante de fotos del movimiento.
func (m *Movement) IsConsistent() bool {
	return m.NewStock == m.PreviousStock+m.Quantity
}
