package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// MovementReader lectura del ledger.
type MovementReader interface {
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	ExistsForProduct(ctx context.Context, productID string, movementType entity.MovementType) (bool, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error)
	// ListByProductUntil devuelve los movimientos hasta `until` en orden de aplicación (createdAt ascendente).
	ListByProductUntil(ctx context.Context, productID string, until time.Time) ([]*entity.Movement, error)
	ListByReference(ctx context.Context, referenceID string) ([]*entity.Movement, error)
}

// MovementRepository ledger append-only: no hay Update ni Delete.
type MovementRepository interface {
	MovementReader
	Create(ctx context.Context, movement *entity.Movement) error
}
