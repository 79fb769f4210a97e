package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// SignRule regla de signo que aplica un tipo de movimiento a la magnitud que envía el caller.
type SignRule int

const (
	// ForcedNegative siempre −|m| (mermas, pérdidas, uso interno, promociones).
	ForcedNegative SignRule = iota + 1
	// ForcedPositive siempre +|m| (devoluciones, compras, ingresos, recepciones, migración).
	ForcedPositive
	// CallerControlled el signo del caller pasa tal cual (ajuste manual).
	CallerControlled
	// SystemNegative negativo implícito, emitido solo por el flujo de checkout.
	SystemNegative
)

func (r SignRule) String() string {
	switch r {
	case ForcedNegative:
		return "forced-negative"
	case ForcedPositive:
		return "forced-positive"
	case CallerControlled:
		return "caller-controlled"
	case SystemNegative:
		return "system-negative"
	}
	return "unknown"
}

// RuleFor devuelve la regla de signo del tipo. Tipos fuera de la lista cerrada son ValidationError.
func RuleFor(t entity.MovementType) (SignRule, error) {
	switch t {
	case entity.MovementTypeDamage, entity.MovementTypeLost, entity.MovementTypeStoreUse, entity.MovementTypePromotion:
		return ForcedNegative, nil
	case entity.MovementTypeReturn, entity.MovementTypePurchase, entity.MovementTypeInitialIntake,
		entity.MovementTypeRestockReceived, entity.MovementTypeInitialMigration:
		return ForcedPositive, nil
	case entity.MovementTypeManualAdjustment:
		return CallerControlled, nil
	case entity.MovementTypeOrderPlaced:
		return SystemNegative, nil
	}
	return 0, domain.NewValidationError("type", fmt.Sprintf("tipo de movimiento no reconocido: %q", string(t)))
}

// NormalizeQuantity aplica la regla de signo a la magnitud. Es idempotente sobre cantidades ya normalizadas.
func NormalizeQuantity(t entity.MovementType, magnitude int64) (int64, error) {
	rule, err := RuleFor(t)
	if err != nil {
		return 0, err
	}
	if magnitude == math.MinInt64 {
		return 0, domain.NewValidationError("quantity", "magnitud fuera de rango")
	}
	switch rule {
	case ForcedNegative, SystemNegative:
		return -abs(magnitude), nil
	case ForcedPositive:
		return abs(magnitude), nil
	default:
		return magnitude, nil
	}
}

// UserAdjustable indica si el tipo puede enviarse desde un formulario de ajuste.
// ORDER_PLACED, RESTOCK_RECEIVED e INITIAL_MIGRATION solo los emiten flujos del sistema.
func UserAdjustable(t entity.MovementType) bool {
	switch t {
	case entity.MovementTypeOrderPlaced, entity.MovementTypeRestockReceived, entity.MovementTypeInitialMigration:
		return false
	}
	return t.IsValid()
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
