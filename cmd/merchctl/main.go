// Comando merchctl: tareas de operación sobre la base de datos de merchandising.
//
//	merchctl schema              crea las tablas que falten
//	merchctl stock --grupo X     recalcula y muestra el stock de la unidad
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/domain/entity"
	"github.com/kossodo/merch-api/internal/infrastructure/postgres"
	"github.com/kossodo/merch-api/pkg/config"
	"github.com/kossodo/merch-api/pkg/logger"
)

var stockGroup string

var rootCmd = &cobra.Command{
	Use:           "merchctl",
	Short:         "Herramientas de operación de merch-api",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Crea las tablas e índices que falten (idempotente)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withPool(cmd.Context(), func(pool *pgxpool.Pool, log *logger.Logger) error {
			if err := postgres.Bootstrap(cmd.Context(), pool, log.Named("schema")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "esquema listo")
			return nil
		})
	},
}

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Recalcula el stock de una unidad y lo imprime como JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		unit, err := entity.ParseBusinessUnit(stockGroup)
		if err != nil {
			return err
		}
		return withPool(cmd.Context(), func(pool *pgxpool.Pool, _ *logger.Logger) error {
			uc := inventory.NewStockUseCase(
				postgres.NewInventoryRepository(pool),
				postgres.NewConfirmationRepository(pool),
				postgres.NewProductRepository(pool),
				postgres.NewStockRepository(pool),
			)
			out, err := uc.Compute(cmd.Context(), unit)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		})
	},
}

func init() {
	stockCmd.Flags().StringVar(&stockGroup, "grupo", "", "unidad de negocio: kossodo o kossomet")
	_ = stockCmd.MarkFlagRequired("grupo")
	rootCmd.AddCommand(schemaCmd, stockCmd)
}

// withPool carga la configuración, abre el pool, verifica la conexión y ejecuta fn.
func withPool(ctx context.Context, fn func(pool *pgxpool.Pool, log *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "merchctl"})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Ping(ctx, pool); err != nil {
		return err
	}
	return fn(pool, log)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
