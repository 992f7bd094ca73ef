package app

import (
	"context"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/service"
	"go.uber.org/zap"
)

// Scheduler runs the engine's periodic maintenance tasks.
type Scheduler struct {
	packageService *service.PackageService
	logger         *zap.Logger
	stopChan       chan struct{}
}

func NewScheduler(packageService *service.PackageService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		packageService: packageService,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")
	go s.runPackageSweepTask(ctx)
}

// Stop stops the background tasks.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runPackageSweepTask archives exhausted packages once a day so stale
// credit stops showing up as selectable.
func (s *Scheduler) runPackageSweepTask(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Package sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Package sweep task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	archived, err := s.packageService.SweepExhausted(ctx)
	if err != nil {
		s.logger.Error("Failed to sweep exhausted packages", zap.Error(err))
		return
	}

	s.logger.Info("Exhausted package sweep completed",
		zap.Int("archived", archived))
}
