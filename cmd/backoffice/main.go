package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/app"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/config"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/notify"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// The engine itself is a library; this binary runs its maintenance side:
// migrations at startup and the periodic package sweep.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	baseRepo := base.NewRepository(pool)
	occurrenceRepo := repository.NewOccurrenceRepository(baseRepo)
	packageRepo := repository.NewPackageRepository(baseRepo)

	notifier := notify.NewNotifier()
	packageService := service.NewPackageService(packageRepo, occurrenceRepo, notifier, logger)

	events, cancel := notifier.Subscribe()
	defer cancel()
	go func() {
		for event := range events {
			logger.Debug("Change committed",
				zap.String("kind", string(event.Kind)),
				zap.String("id", event.ID))
		}
	}()

	scheduler := app.NewScheduler(packageService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("Back office engine started",
		zap.String("environment", cfg.Environment),
		zap.String("overdraw_policy", string(cfg.OverdrawPolicy)))

	<-ctx.Done()
	logger.Info("Shutting down")
}
