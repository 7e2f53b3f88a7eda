package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wastetracker/internal/config"
	"wastetracker/internal/database"
	"wastetracker/internal/database/migration"
	"wastetracker/internal/logging"
	"wastetracker/internal/otel"
)

// @title Food Waste Tracker API
// @version 1.0
// @description Log wasted food, analyze food photos and chat with a food waste assistant.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "wastetracker",
		Short:        "Food waste tracker API server",
		SilenceUsage: true,

		// Running without a subcommand starts the server.
		RunE: serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newMigrateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			return migration.EnsureMigrated(cmd.Context(), env.db, env.log, env.cfg.Database.Host)
		},
	}
}

// runtimeEnv holds what both subcommands need before doing their own work.
type runtimeEnv struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	db       *sql.DB
	shutdown otel.ShutdownFunc
}

func bootstrap(ctx context.Context) (*runtimeEnv, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	log := logging.New(cfg.Log.Level, cfg.Location())
	zap.ReplaceGlobals(log)

	shutdown, err := otel.Init(ctx, log)
	if err != nil {
		// Tracing is optional; the server still runs without an exporter.
		log.Warn("tracing disabled", zap.Error(err))
		shutdown = func(context.Context) error { return nil }
	}

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Error("db_connect_failed", zap.String("event", "db_connect_failed"), zap.Error(err))
		_ = shutdown(ctx)
		_ = log.Sync()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &runtimeEnv{cfg: cfg, log: log, db: db, shutdown: shutdown}, nil
}

func (e *runtimeEnv) close() {
	_ = e.db.Close()
	if err := e.shutdown(context.Background()); err != nil {
		e.log.Warn("tracing shutdown failed", zap.Error(err))
	}
	_ = e.log.Sync()
}
