package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, store_id, product_id, type, quantity, previous_stock, new_stock,
	reason, description, cost, reference_id, created_by, created_at`

// MovementRepo ledger append-only sobre stock_movements (usable con pool o tx).
// El orden de aplicación es (created_at, seq): seq desempata movimientos del mismo instante.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. El índice único parcial de INITIAL_MIGRATION devuelve domain.ErrDuplicate.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.ID, m.StoreID, m.ProductID, string(m.Type), m.Quantity, m.PreviousStock, m.NewStock,
		m.Reason, m.Description, m.Cost, m.ReferenceID, m.CreatedBy, m.CreatedAt,
	)
	return mapError("movement.Create", err)
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("movement.GetByID", err)
	}
	return m, nil
}

// ExistsForProduct indica si el producto ya tiene un movimiento del tipo dado.
func (r *MovementRepo) ExistsForProduct(ctx context.Context, productID string, t entity.MovementType) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_movements WHERE product_id = $1 AND type = $2)`,
		productID, string(t)).Scan(&exists)
	if err != nil {
		return false, mapError("movement.ExistsForProduct", err)
	}
	return exists, nil
}

// ListByProduct historial del producto, más recientes primero. limit ≤ 0 no limita.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	return r.list(ctx, "movement.ListByProduct", `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`, productID, lim, offset)
}

// ListByProductUntil movimientos hasta `until` inclusive, en orden de aplicación.
func (r *MovementRepo) ListByProductUntil(ctx context.Context, productID string, until time.Time) ([]*entity.Movement, error) {
	return r.list(ctx, "movement.ListByProductUntil", `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE product_id = $1 AND created_at <= $2
		ORDER BY created_at, seq`, productID, until)
}

// ListByReference movimientos ligados a un documento (orden de compra, venta).
func (r *MovementRepo) ListByReference(ctx context.Context, referenceID string) ([]*entity.Movement, error) {
	return r.list(ctx, "movement.ListByReference", `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE reference_id = $1
		ORDER BY created_at, seq`, referenceID)
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	list := []*entity.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var typ string
	if err := row.Scan(
		&m.ID, &m.StoreID, &m.ProductID, &typ, &m.Quantity, &m.PreviousStock, &m.NewStock,
		&m.Reason, &m.Description, &m.Cost, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}
