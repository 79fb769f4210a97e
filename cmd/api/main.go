package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/restock"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// backend repositorios fuera de transacción según STORAGE_DRIVER.
type backend struct {
	runner    inventory.TxRunner
	legacy    repository.LegacyStockRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	tx := inventory.NewTransactor(be.runner)
	ledger := inventory.NewLedger(tx, log)
	migrationUC := inventory.NewMigrationUseCase(tx, ledger, be.legacy, log)
	restockUC := restock.NewUseCase(tx, ledger, infrapdf.NewMarotoPDFGenerator(), log)
	abcUC := analytics.NewAbcUseCase(tx, be.analytics, log,
		analytics.WithThresholds(domaininv.AbcThresholds{A: cfg.Abc.ThresholdA, B: cfg.Abc.ThresholdB}),
		analytics.WithDefaultLookback(cfg.Abc.LookbackDays),
	)

	sched, err := scheduler.New(cfg.Abc.Cron, cfg.Abc.StoreIDs, abcUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar scheduler")
	}
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledger,
		Migration:   migrationUC,
		Restock:     restockUC,
		Abc:         abcUC,
		JWTSecret:   cfg.JWT.Secret,
		SwaggerFile: cfg.App.SwaggerFile,
		AppName:     cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sched.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}

// openBackend memory es solo para desarrollo: los datos viven mientras dure el proceso.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &backend{runner: st, legacy: st, analytics: st, close: func() {}}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		runner:    postgres.NewTxRunner(pool),
		legacy:    postgres.NewLegacyStockRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
