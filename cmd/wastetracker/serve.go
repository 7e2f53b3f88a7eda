package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wastetracker/internal/assistant"
	"wastetracker/internal/database/migration"
	handlers "wastetracker/internal/http/handler"
	"wastetracker/internal/http/middleware"
	"wastetracker/internal/metrics"
	"wastetracker/internal/otel"
	"wastetracker/internal/recognition"
	"wastetracker/internal/repository/postgres"
	"wastetracker/internal/service"
	"wastetracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the database schema before listening")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	env, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer env.close()
	cfg, log := env.cfg, env.log

	if migrate {
		if err := migration.EnsureMigrated(ctx, env.db, log, cfg.Database.Host); err != nil {
			return err
		}
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	recognizer, err := recognition.New(ctx, cfg.Recognition, otel.HTTPClient())
	if err != nil {
		return fmt.Errorf("failed to initialize recognizer: %w", err)
	}

	var generator assistant.Generator
	if cfg.Assistant.GeminiAPIKey != "" {
		g, err := assistant.NewGemini(ctx, cfg.Assistant.GeminiAPIKey, cfg.Assistant.GeminiModel, otel.HTTPClient())
		if err != nil {
			return fmt.Errorf("failed to initialize gemini: %w", err)
		}
		generator = g
	}

	domainMetrics, err := metrics.NewDomain(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register http metrics: %w", err)
	}

	entryRepo := postgres.NewWasteEntryPostgres(env.db)
	imageRepo := postgres.NewFoodImagePostgres(env.db)

	advisor := assistant.New(entryRepo, generator, cfg.Assistant.Mode, domainMetrics, log)
	wasteSvc := service.NewWasteService(entryRepo, advisor, cfg.Location(), domainMetrics, log)
	imageSvc := service.NewFoodImageService(objStore, imageRepo, recognizer, int64(cfg.MaxUploadBytes), domainMetrics, log)
	chatSvc := service.NewChatService(advisor, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Multipart overhead on top of the largest accepted image.
		BodyLimit: cfg.MaxUploadBytes + 1<<20,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:         env.db,
		Waste:      wasteSvc,
		Images:     imageSvc,
		Chat:       chatSvc,
		StaticDir:  cfg.StaticDir,
		PublicHost: cfg.AppHost,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting",
			zap.String("event", "server_starting"),
			zap.String("addr", addr),
			zap.String("recognition_provider", recognizer.Name()),
			zap.String("chatbot_mode", cfg.Assistant.Mode),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server_stopping", zap.String("event", "server_stopping"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
