package service

import (
	"context"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/billing"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/notify"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository"
	"go.uber.org/zap"
)

// PackageService exposes package balances and housekeeping. Balances are
// always recomputed from the current occurrence snapshot.
type PackageService struct {
	packageRepo    *repository.PackageRepository
	occurrenceRepo *repository.OccurrenceRepository
	notifier       *notify.Notifier
	logger         *zap.Logger
}

func NewPackageService(
	packageRepo *repository.PackageRepository,
	occurrenceRepo *repository.OccurrenceRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *PackageService {
	return &PackageService{
		packageRepo:    packageRepo,
		occurrenceRepo: occurrenceRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// PackagesWithBalance returns all of a student's packages with their
// derived balances, oldest purchase first.
func (s *PackageService) PackagesWithBalance(ctx context.Context, studentID string) ([]billing.PackageWithBalance, error) {
	packages, err := s.packageRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.occurrenceRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return billing.Balances(packages, occurrences), nil
}

// RemainingHours returns a single package's unconsumed balance.
func (s *PackageService) RemainingHours(ctx context.Context, packageID string) (float64, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return 0, err
	}
	if pkg == nil {
		return 0, fmt.Errorf("class package not found")
	}

	occurrences, err := s.occurrenceRepo.GetByPackageID(ctx, packageID)
	if err != nil {
		return 0, err
	}

	return billing.RemainingHours(pkg, occurrences), nil
}

// SweepExhausted archives active packages whose balance dropped to zero
// or below, so stale credit stops appearing as selectable. Returns how
// many packages were archived.
func (s *PackageService) SweepExhausted(ctx context.Context) (int, error) {
	packages, err := s.packageRepo.GetActive(ctx)
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, pkg := range packages {
		occurrences, err := s.occurrenceRepo.GetByPackageID(ctx, pkg.ID)
		if err != nil {
			s.logger.Error("Failed to load package occurrences",
				zap.Error(err),
				zap.String("package_id", pkg.ID))
			continue
		}

		if billing.RemainingHours(pkg, occurrences) > 0 {
			continue
		}

		if err := s.packageRepo.UpdateStatus(ctx, pkg.ID, model.PackageStatusArchived); err != nil {
			s.logger.Error("Failed to archive exhausted package",
				zap.Error(err),
				zap.String("package_id", pkg.ID))
			continue
		}

		archived++
		if s.notifier != nil {
			s.notifier.Publish(notify.Event{Kind: notify.KindPackage, ID: pkg.ID})
		}
	}

	return archived, nil
}
