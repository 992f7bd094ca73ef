package service

import (
	"context"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/billing"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/notify"
	"go.uber.org/zap"
)

// Store interfaces the payment state machine mutates through. The pgx
// repositories satisfy them; tests substitute failing fakes to prove the
// atomic batch never applies partially.

type OccurrenceStore interface {
	GetByID(ctx context.Context, id string) (*model.ClassOccurrence, error)
	GetByStudentID(ctx context.Context, studentID string) ([]*model.ClassOccurrence, error)
	UpdatePayment(ctx context.Context, id string, expectedRevision int64, status model.PaymentStatus, packageID, ledgerTransactionID string) error
}

type LedgerStore interface {
	Insert(ctx context.Context, tx *model.LedgerTransaction) error
	Delete(ctx context.Context, id string) error
	GetByStudentID(ctx context.Context, studentID string) ([]*model.LedgerTransaction, error)
}

type PackageStore interface {
	GetActiveByStudentID(ctx context.Context, studentID string) ([]*model.ClassPackage, error)
}

type TeacherStore interface {
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
}

// TxManager runs a function inside one atomic batch.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentService is the transactional core: it moves an individual class
// occurrence between payment states, pairing the occurrence update with
// the creation or retirement of at most one ledger transaction in a
// single atomic batch.
type PaymentService struct {
	txm         TxManager
	occurrences OccurrenceStore
	ledger      LedgerStore
	packages    PackageStore
	teachers    TeacherStore
	defaultRate float64
	policy      billing.OverdrawPolicy
	notifier    *notify.Notifier
	logger      *zap.Logger
}

func NewPaymentService(
	txm TxManager,
	occurrences OccurrenceStore,
	ledger LedgerStore,
	packages PackageStore,
	teachers TeacherStore,
	defaultRate float64,
	policy billing.OverdrawPolicy,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		txm:         txm,
		occurrences: occurrences,
		ledger:      ledger,
		packages:    packages,
		teachers:    teachers,
		defaultRate: defaultRate,
		policy:      policy,
		notifier:    notifier,
		logger:      logger,
	}
}

// SetPaymentStatus moves the occurrence into the target payment state.
//
// Package eligibility is recomputed here, at transition time: two sessions
// racing for the last unit of credit are serialized by the revision guard
// on the occurrence write, and the loser recomputes against the winner's
// committed state. Insufficient credit aborts before any write; a storage
// failure inside the batch rolls everything back.
func (s *PaymentService) SetPaymentStatus(ctx context.Context, occurrenceID string, target model.PaymentStatus, actorID string) (*model.ClassOccurrence, error) {
	occ, err := s.occurrences.GetByID(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("get occurrence: %w", err)
	}
	if occ == nil {
		return nil, fmt.Errorf("class occurrence not found")
	}

	teacher, err := s.teachers.GetByID(ctx, occ.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	in := billing.TransitionInput{
		Teacher:           teacher,
		DefaultHourlyRate: s.defaultRate,
		Policy:            s.policy,
		ActorID:           actorID,
		Description:       fmt.Sprintf("Individual class %s %s", occ.Date.Format("02.01.2006"), occ.Time),
	}

	if target == model.PaymentStatusPackage {
		in.Eligible, err = s.eligiblePackages(ctx, occ.StudentID)
		if err != nil {
			return nil, err
		}
	}

	plan, err := billing.PlanTransition(occ, target, in)
	if err != nil {
		return nil, err
	}

	// Write order matters: the occurrence references ledger rows, so the
	// new row must exist before the occurrence points at it, and the old
	// row stays until the occurrence no longer references it.
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if plan.CreateLedger != nil {
			if err := s.ledger.Insert(ctx, plan.CreateLedger); err != nil {
				return err
			}
		}
		if err := s.occurrences.UpdatePayment(ctx, occ.ID, occ.Revision, plan.Target, plan.PackageID, plan.LedgerTransactionID); err != nil {
			return err
		}
		if plan.DeleteLedgerID != "" {
			if err := s.ledger.Delete(ctx, plan.DeleteLedgerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	occ.PaymentStatus = plan.Target
	occ.PackageID = plan.PackageID
	occ.LedgerTransactionID = plan.LedgerTransactionID
	occ.Revision++

	s.logger.Info("Payment status changed",
		zap.String("occurrence_id", occ.ID),
		zap.String("payment_status", string(target)),
		zap.String("package_id", plan.PackageID),
		zap.String("ledger_transaction_id", plan.LedgerTransactionID),
	)

	if s.notifier != nil {
		s.notifier.Publish(notify.Event{Kind: notify.KindOccurrence, ID: occ.ID})
		if plan.CreateLedger != nil {
			s.notifier.Publish(notify.Event{Kind: notify.KindLedger, ID: plan.CreateLedger.ID})
		}
		if plan.DeleteLedgerID != "" {
			s.notifier.Publish(notify.Event{Kind: notify.KindLedger, ID: plan.DeleteLedgerID})
		}
	}

	return occ, nil
}

// LedgerHistory returns the student's ledger transactions, newest first,
// for the billing UI's statement view.
func (s *PaymentService) LedgerHistory(ctx context.Context, studentID string) ([]*model.LedgerTransaction, error) {
	transactions, err := s.ledger.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get ledger transactions: %w", err)
	}
	return transactions, nil
}

// EligiblePackages exposes the student's billable packages with balances,
// for the billing UI's package picker.
func (s *PaymentService) EligiblePackages(ctx context.Context, studentID string) ([]billing.PackageWithBalance, error) {
	return s.eligiblePackages(ctx, studentID)
}

func (s *PaymentService) eligiblePackages(ctx context.Context, studentID string) ([]billing.PackageWithBalance, error) {
	packages, err := s.packages.GetActiveByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student packages: %w", err)
	}

	occurrences, err := s.occurrences.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student occurrences: %w", err)
	}

	return billing.EligiblePackages(studentID, packages, occurrences), nil
}
