package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil))

	dup := &pgconn.PgError{Code: codeUniqueViolation}
	assert.ErrorIs(t, mapError("op", dup), domain.ErrDuplicate)
	assert.True(t, isUniqueViolation(dup))
	assert.ErrorIs(t, mapError("op", fmt.Errorf("insert: %w", dup)), domain.ErrDuplicate)
	assert.False(t, isUniqueViolation(errors.New("otro")))

	check := &pgconn.PgError{Code: codeCheckViolation, ConstraintName: "stock_movements_snapshot", Message: "violates check"}
	var ve *domain.ValidationError
	assert.ErrorAs(t, mapError("op", check), &ve)
	assert.Equal(t, "stock_movements_snapshot", ve.Field)

	other := errors.New("conn reset")
	err := mapError("movement.Create", other)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, other)
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}
