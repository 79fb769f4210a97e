// Package analytics contiene la reclasificación ABC de productos por utilidad atribuida.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// DefaultLookbackDays ventana de ventas usada si el caller no indica otra.
const DefaultLookbackDays = 90

// AbcUseCase recalcula la clase A/B/C de cada producto de una tienda.
//
// Fuente de datos: AnalyticsRepository (solo lectura). La escritura son tres
// actualizaciones en bloque dentro de una sola transacción: A, B y el resto a C.
type AbcUseCase struct {
	tx         *inventory.Transactor
	analytics  repository.AnalyticsRepository
	thresholds domaininv.AbcThresholds
	lookback   int
	log        *logger.Logger
	now        func() time.Time
}

// AbcOption configura el caso de uso.
type AbcOption func(*AbcUseCase)

// WithThresholds reemplaza los cortes 0.80 / 0.95.
func WithThresholds(th domaininv.AbcThresholds) AbcOption {
	return func(uc *AbcUseCase) { uc.thresholds = th }
}

// WithDefaultLookback ventana por defecto en días.
func WithDefaultLookback(days int) AbcOption {
	return func(uc *AbcUseCase) {
		if days > 0 {
			uc.lookback = days
		}
	}
}

// WithNow reemplaza el reloj (tests).
func WithNow(now func() time.Time) AbcOption {
	return func(uc *AbcUseCase) { uc.now = now }
}

// NewAbcUseCase construye el caso de uso.
func NewAbcUseCase(tx *inventory.Transactor, analytics repository.AnalyticsRepository, log *logger.Logger, opts ...AbcOption) *AbcUseCase {
	uc := &AbcUseCase{
		tx:         tx,
		analytics:  analytics,
		thresholds: domaininv.DefaultAbcThresholds(),
		lookback:   DefaultLookbackDays,
		log:        log.Component("abc"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Recompute clasifica los productos de la tienda con las ventas de los últimos lookbackDays.
// lookbackDays ≤ 0 usa la ventana por defecto.
func (uc *AbcUseCase) Recompute(ctx context.Context, storeID string, lookbackDays int) (*dto.AbcRecomputeResponse, error) {
	if storeID == "" {
		return nil, domain.NewValidationError("store_id", "requerido")
	}
	if lookbackDays <= 0 {
		lookbackDays = uc.lookback
	}
	now := uc.now()
	since := now.AddDate(0, 0, -lookbackDays)

	// El ranking se lee fuera de la transacción; solo el reetiquetado es atómico.
	rankings, err := uc.analytics.GetProfitRanking(ctx, storeID, since)
	if err != nil {
		return nil, fmt.Errorf("ranking de utilidad: %w", err)
	}
	classes := domaininv.ClassifyABC(rankings, uc.thresholds)

	var setA, setB []string
	for id, class := range classes {
		switch class {
		case entity.AbcClassA:
			setA = append(setA, id)
		case entity.AbcClassB:
			setB = append(setB, id)
		}
	}

	out := &dto.AbcRecomputeResponse{StoreID: storeID, LookbackDays: lookbackDays, RecomputedAt: now}
	err = uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		products := tx.Products()
		var err error
		if out.ClassA, err = products.SetClassification(ctx, storeID, setA, entity.AbcClassA); err != nil {
			return err
		}
		if out.ClassB, err = products.SetClassification(ctx, storeID, setB, entity.AbcClassB); err != nil {
			return err
		}
		// sin ventas en la ventana o utilidad ≤ 0 → C
		excluded := append(append([]string{}, setA...), setB...)
		out.ClassC, err = products.SetClassificationExcept(ctx, storeID, excluded, entity.AbcClassC)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("store_id", storeID).
		Int("lookback_days", lookbackDays).
		Int("ranked", len(rankings)).
		Int64("a", out.ClassA).
		Int64("b", out.ClassB).
		Int64("c", out.ClassC).
		Msg("clasificación ABC recalculada")
	return out, nil
}

// RecomputeStores recalcula varias tiendas; un fallo no detiene a las demás.
func (uc *AbcUseCase) RecomputeStores(ctx context.Context, storeIDs []string) error {
	var errs []error
	for _, id := range storeIDs {
		if _, err := uc.Recompute(ctx, id, 0); err != nil {
			uc.log.Error().Err(err).Str("store_id", id).Msg("falló la clasificación ABC")
			errs = append(errs, fmt.Errorf("tienda %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
