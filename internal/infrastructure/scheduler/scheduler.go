package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// jobTimeout tope de una corrida completa de reclasificación.
const jobTimeout = 10 * time.Minute

// AbcRecomputer reclasifica las tiendas indicadas (analytics.AbcUseCase).
type AbcRecomputer interface {
	RecomputeStores(ctx context.Context, storeIDs []string) error
}

// Scheduler ejecuta la reclasificación ABC periódica.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	storeIDs []string
	job      AbcRecomputer
	log      *logger.Logger
}

// New valida la expresión cron (5 campos). Una expresión vacía deja el scheduler deshabilitado.
func New(spec string, storeIDs []string, job AbcRecomputer, log *logger.Logger) (*Scheduler, error) {
	if spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return nil, fmt.Errorf("scheduler: expresión cron inválida %q: %w", spec, err)
		}
	}
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:     spec,
		storeIDs: storeIDs,
		job:      job,
		log:      log.Component("scheduler"),
	}, nil
}

// Enabled hay expresión y al menos una tienda.
func (s *Scheduler) Enabled() bool {
	return s.spec != "" && len(s.storeIDs) > 0
}

// Start registra el job y arranca el cron. Sin configuración no hace nada.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.log.Info().Msg("reclasificación ABC programada deshabilitada")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.RunNow); err != nil {
		return fmt.Errorf("scheduler: registrar job: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.spec).Strs("stores", s.storeIDs).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera la corrida en curso o el fin de ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con una corrida en curso")
	}
}

// RunNow ejecuta una reclasificación de todas las tiendas configuradas.
func (s *Scheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := s.job.RecomputeStores(ctx, s.storeIDs); err != nil {
		s.log.Error().Err(err).Msg("reclasificación ABC con errores")
		return
	}
	s.log.Info().Dur("took", time.Since(start)).Int("stores", len(s.storeIDs)).Msg("reclasificación ABC completada")
}
