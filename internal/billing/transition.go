package billing

import (
	"errors"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/google/uuid"
)

var (
	// ErrNoCreditAvailable aborts a transition into package billing when
	// the student has no package able to absorb the class.
	ErrNoCreditAvailable = errors.New("no package credit available")

	// ErrInvalidTransition rejects a payment-state edge the machine does
	// not define.
	ErrInvalidTransition = errors.New("invalid payment transition")
)

// OverdrawPolicy decides what a package must have left for a class to be
// billed against it.
type OverdrawPolicy string

const (
	// OverdrawReject requires the remaining balance to cover the class's
	// full duration.
	OverdrawReject OverdrawPolicy = "reject"
	// OverdrawAllow only requires a positive remaining balance; the class
	// may draw the package negative, and the resulting balance is
	// surfaced as a warning rather than rejected.
	OverdrawAllow OverdrawPolicy = "allow"
)

func (p OverdrawPolicy) Valid() bool {
	return p == OverdrawReject || p == OverdrawAllow
}

// TransitionInput is the context a payment transition is planned against.
// Eligible packages must be recomputed at transition time by the caller;
// planning never reads storage.
type TransitionInput struct {
	Teacher           *model.Teacher
	DefaultHourlyRate float64
	Eligible          []PackageWithBalance
	Policy            OverdrawPolicy
	ActorID           string
	Description       string
}

// TransitionPlan is the atomic batch a transition amounts to: at most one
// ledger deletion, at most one ledger creation, and the occurrence's new
// payment fields. The plan is applied all-or-nothing by the caller.
type TransitionPlan struct {
	Target              model.PaymentStatus
	DeleteLedgerID      string
	CreateLedger        *model.LedgerTransaction
	PackageID           string
	LedgerTransactionID string
}

// PlanTransition computes the atomic batch that moves an occurrence into
// the target payment state.
//
// Defined edges: pending <-> paid, pending <-> package, paid <-> package,
// any state -> free, free -> pending. A prior ledger transaction or
// package link is always retired as part of the same plan, so the
// occurrence never ends up owning both.
func PlanTransition(occ *model.ClassOccurrence, target model.PaymentStatus, in TransitionInput) (*TransitionPlan, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown target %q", ErrInvalidTransition, target)
	}
	if !allowedEdge(occ.PaymentStatus, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, occ.PaymentStatus, target)
	}

	plan := &TransitionPlan{
		Target:         target,
		DeleteLedgerID: occ.LedgerTransactionID,
	}

	switch target {
	case model.PaymentStatusPaid:
		amount := occ.Hours() * hourlyRate(in)
		if amount > 0 {
			plan.CreateLedger = &model.LedgerTransaction{
				ID:             uuid.NewString(),
				Type:           model.TransactionTypeCredit,
				Date:           occ.Date,
				Amount:         amount,
				StudentID:      occ.StudentID,
				Description:    in.Description,
				RegisteredByID: in.ActorID,
			}
			plan.LedgerTransactionID = plan.CreateLedger.ID
		}

	case model.PaymentStatusPackage:
		selected, err := selectPackage(occ, in)
		if err != nil {
			return nil, err
		}
		plan.PackageID = selected.Package.ID

	case model.PaymentStatusPending, model.PaymentStatusFree:
		// Both references cleared; any linked transaction retired.
	}

	return plan, nil
}

func allowedEdge(from, to model.PaymentStatus) bool {
	if from == to {
		return false
	}
	if to == model.PaymentStatusFree {
		return true
	}
	if from == model.PaymentStatusFree {
		return to == model.PaymentStatusPending
	}
	// pending, paid and package are mutually reachable.
	return true
}

func hourlyRate(in TransitionInput) float64 {
	if in.Teacher != nil && in.Teacher.HourlyRate > 0 {
		return in.Teacher.HourlyRate
	}
	return in.DefaultHourlyRate
}

// selectPackage picks the oldest eligible package under the configured
// overdraw policy. Eligibility (active, remaining > 0, FIFO order) has
// already been established by EligiblePackages.
func selectPackage(occ *model.ClassOccurrence, in TransitionInput) (PackageWithBalance, error) {
	policy := in.Policy
	if !policy.Valid() {
		policy = OverdrawReject
	}

	for _, pwb := range in.Eligible {
		if policy == OverdrawAllow || pwb.RemainingHours >= occ.Hours() {
			return pwb, nil
		}
	}
	return PackageWithBalance{}, ErrNoCreditAvailable
}
