// migrate_stock abre el ledger de una tienda con el stock heredado (un INITIAL_MIGRATION por producto).
//
// Uso:
//
//	go run ./cmd/migrate_stock -store <store_id> -user <user_id>
//
// Es re-ejecutable: los productos ya migrados se reportan como omitidos.
// Imprime el resultado como JSON y termina con código 1 si algún producto falló.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

func main() {
	storeID := flag.String("store", "", "ID de la tienda a migrar (requerido)")
	userID := flag.String("user", "migracion", "usuario que queda como created_by")
	timeout := flag.Duration("timeout", 30*time.Minute, "tiempo máximo de la corrida")
	flag.Parse()

	if *storeID == "" {
		fmt.Fprintln(os.Stderr, "uso: migrate_stock -store <store_id> [-user <user_id>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones de esquema")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tx := inventory.NewTransactor(postgres.NewTxRunner(pool))
	uc := inventory.NewMigrationUseCase(tx, inventory.NewLedger(tx, log), postgres.NewLegacyStockRepository(pool), log)

	res, err := uc.MigrateInitialStock(ctx, *storeID, *userID)
	if err != nil {
		log.Error().Err(err).Str("store_id", *storeID).Msg("migración de stock inicial")
		pool.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error().Err(err).Msg("imprimir resultado")
	}
	if len(res.Errors) > 0 {
		pool.Close()
		os.Exit(1)
	}
}
