package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// Motivos de omisión reportados por la migración.
const (
	SkipAlreadyMigrated = "ya migrado"
	SkipZeroStock       = "stock heredado en cero"
)

// MigrationSkip producto omitido y su motivo.
type MigrationSkip struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// MigrationError producto que no se pudo migrar.
type MigrationError struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}

// MigrationResult conteo de la corrida: los omitidos siempre se reportan.
type MigrationResult struct {
	StoreID  string           `json:"store_id"`
	Migrated int              `json:"migrated"`
	Skipped  int              `json:"skipped"`
	Skips    []MigrationSkip  `json:"skips"`
	Errors   []MigrationError `json:"errors"`
}

// MigrationUseCase abre el ledger de una tienda con un movimiento INITIAL_MIGRATION por producto.
// Es re-ejecutable: si el producto ya tiene su INITIAL_MIGRATION, se omite.
type MigrationUseCase struct {
	tx     *Transactor
	ledger *Ledger
	legacy repository.LegacyStockRepository
	log    *logger.Logger
}

// NewMigrationUseCase construye el caso de uso.
func NewMigrationUseCase(tx *Transactor, ledger *Ledger, legacy repository.LegacyStockRepository, log *logger.Logger) *MigrationUseCase {
	return &MigrationUseCase{tx: tx, ledger: ledger, legacy: legacy, log: log.Component("migration")}
}

// MigrateInitialStock migra cada producto en su propia transacción: un producto con error no revierte a los demás.
func (uc *MigrationUseCase) MigrateInitialStock(ctx context.Context, storeID, createdBy string) (*MigrationResult, error) {
	if storeID == "" {
		return nil, domain.NewValidationError("store_id", "requerido")
	}
	rows, err := uc.legacy.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	res := &MigrationResult{StoreID: storeID, Skips: []MigrationSkip{}, Errors: []MigrationError{}}
	for _, row := range rows {
		if row.Quantity == 0 {
			res.skip(row.ProductID, SkipZeroStock)
			continue
		}
		if row.Quantity < 0 {
			res.fail(row.ProductID, fmt.Sprintf("stock heredado negativo (%d)", row.Quantity))
			continue
		}

		skipped, err := uc.migrateOne(ctx, storeID, createdBy, row)
		switch {
		case err != nil:
			res.fail(row.ProductID, err.Error())
		case skipped:
			res.skip(row.ProductID, SkipAlreadyMigrated)
		default:
			res.Migrated++
		}
	}

	uc.log.Info().
		Str("store_id", storeID).
		Int("migrated", res.Migrated).
		Int("skipped", res.Skipped).
		Int("errors", len(res.Errors)).
		Msg("migración de stock inicial")
	return res, nil
}

func (uc *MigrationUseCase) migrateOne(ctx context.Context, storeID, createdBy string, row entity.LegacyStock) (bool, error) {
	skipped := false
	err := uc.tx.Do(ctx, func(tx *Tx) error {
		// Bloquear el producto serializa dos corridas concurrentes sobre el mismo producto.
		product, err := tx.Products().GetForUpdate(ctx, row.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.StoreID != storeID {
			return fmt.Errorf("producto %s: %w", row.ProductID, domain.ErrNotFound)
		}
		exists, err := tx.Movements().ExistsForProduct(ctx, row.ProductID, entity.MovementTypeInitialMigration)
		if err != nil {
			return err
		}
		if exists {
			skipped = true
			return nil
		}
		_, err = uc.ledger.CreateMovement(ctx, tx, MovementParams{
			StoreID:   storeID,
			ProductID: row.ProductID,
			Type:      entity.MovementTypeInitialMigration,
			Quantity:  row.Quantity,
			Reason:    "Migración de stock inicial",
			CreatedBy: createdBy,
		})
		return err
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// índice único parcial: otra corrida ganó la carrera
		return true, nil
	}
	return skipped, err
}

func (r *MigrationResult) skip(productID, reason string) {
	r.Skipped++
	r.Skips = append(r.Skips, MigrationSkip{ProductID: productID, Reason: reason})
}

func (r *MigrationResult) fail(productID, msg string) {
	r.Errors = append(r.Errors, MigrationError{ProductID: productID, Message: msg})
}
