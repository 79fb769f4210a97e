package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/inventory/movements.
// Quantity es la magnitud; el tipo decide el signo salvo MANUAL_ADJUSTMENT.
type CreateMovementRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	Type        string           `json:"type" validate:"required"`
	Quantity    int64            `json:"quantity" validate:"required"`
	Reason      string           `json:"reason" validate:"required,max=500"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	ReferenceID *string          `json:"reference_id,omitempty"`
}

// CreateMovementBatchRequest body para POST /api/inventory/movements/batch. Todo o nada.
type CreateMovementBatchRequest struct {
	Movements []CreateMovementRequest `json:"movements" validate:"required,min=1,max=500,dive"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID            string           `json:"id"`
	StoreID       string           `json:"store_id"`
	ProductID     string           `json:"product_id"`
	Type          string           `json:"type"`
	Quantity      int64            `json:"quantity"`
	PreviousStock int64            `json:"previous_stock"`
	NewStock      int64            `json:"new_stock"`
	Reason        string           `json:"reason"`
	Description   *string          `json:"description,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	ReferenceID   *string          `json:"reference_id,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MovementListResponse historial paginado de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockAtResponse stock reconstruido desde el ledger en un instante.
type StockAtResponse struct {
	ProductID string    `json:"product_id"`
	At        time.Time `json:"at"`
	Stock     int64     `json:"stock"`
}

// FromMovement mapea la entidad a su respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		StoreID:       m.StoreID,
		ProductID:     m.ProductID,
		Type:          m.Type.String(),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Description:   m.Description,
		Cost:          m.Cost,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// FromMovements mapea una lista; nunca devuelve nil.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}
