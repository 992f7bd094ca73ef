package billing

import (
	"testing"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occurrence(status model.PaymentStatus, minutes int) *model.ClassOccurrence {
	occ := &model.ClassOccurrence{
		ID:              "occ-1",
		Date:            time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Time:            "14:00",
		DurationMinutes: minutes,
		StudentID:       "s1",
		TeacherID:       "t1",
		PaymentStatus:   status,
	}
	switch status {
	case model.PaymentStatusPaid:
		occ.LedgerTransactionID = "ledger-old"
	case model.PaymentStatusPackage:
		occ.PackageID = "pkg-old"
	}
	return occ
}

func eligible(id string, remaining float64) PackageWithBalance {
	return PackageWithBalance{
		Package:        &model.ClassPackage{ID: id, StudentID: "s1", Status: model.PackageStatusActive},
		RemainingHours: remaining,
	}
}

func TestPlanTransitionEdges(t *testing.T) {
	tests := []struct {
		name    string
		from    model.PaymentStatus
		to      model.PaymentStatus
		wantErr bool
	}{
		{name: "pending to paid", from: model.PaymentStatusPending, to: model.PaymentStatusPaid},
		{name: "paid to pending", from: model.PaymentStatusPaid, to: model.PaymentStatusPending},
		{name: "pending to package", from: model.PaymentStatusPending, to: model.PaymentStatusPackage},
		{name: "package to pending", from: model.PaymentStatusPackage, to: model.PaymentStatusPending},
		{name: "paid to package", from: model.PaymentStatusPaid, to: model.PaymentStatusPackage},
		{name: "package to paid", from: model.PaymentStatusPackage, to: model.PaymentStatusPaid},
		{name: "pending to free", from: model.PaymentStatusPending, to: model.PaymentStatusFree},
		{name: "paid to free", from: model.PaymentStatusPaid, to: model.PaymentStatusFree},
		{name: "package to free", from: model.PaymentStatusPackage, to: model.PaymentStatusFree},
		{name: "free to pending", from: model.PaymentStatusFree, to: model.PaymentStatusPending},
		{name: "free to paid rejected", from: model.PaymentStatusFree, to: model.PaymentStatusPaid, wantErr: true},
		{name: "free to package rejected", from: model.PaymentStatusFree, to: model.PaymentStatusPackage, wantErr: true},
		{name: "same state rejected", from: model.PaymentStatusPending, to: model.PaymentStatusPending, wantErr: true},
	}

	in := TransitionInput{
		Teacher:  &model.Teacher{ID: "t1", HourlyRate: 70},
		Eligible: []PackageWithBalance{eligible("pkg-1", 10)},
		Policy:   OverdrawReject,
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanTransition(occurrence(tt.from, 60), tt.to, in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlanTransitionToPaid(t *testing.T) {
	occ := occurrence(model.PaymentStatusPending, 60)
	in := TransitionInput{
		Teacher: &model.Teacher{ID: "t1", HourlyRate: 70},
		ActorID: "admin-1",
	}

	plan, err := PlanTransition(occ, model.PaymentStatusPaid, in)
	require.NoError(t, err)

	require.NotNil(t, plan.CreateLedger)
	assert.InDelta(t, 70, plan.CreateLedger.Amount, 1e-9)
	assert.Equal(t, model.TransactionTypeCredit, plan.CreateLedger.Type)
	assert.Equal(t, occ.Date, plan.CreateLedger.Date)
	assert.Equal(t, "s1", plan.CreateLedger.StudentID)
	assert.Equal(t, "admin-1", plan.CreateLedger.RegisteredByID)
	assert.Equal(t, plan.CreateLedger.ID, plan.LedgerTransactionID)
	assert.Empty(t, plan.PackageID)
	assert.Empty(t, plan.DeleteLedgerID)
}

func TestPlanTransitionPaidRateFallback(t *testing.T) {
	occ := occurrence(model.PaymentStatusPending, 90)
	in := TransitionInput{
		Teacher:           &model.Teacher{ID: "t1"}, // no declared rate
		DefaultHourlyRate: 80,
	}

	plan, err := PlanTransition(occ, model.PaymentStatusPaid, in)
	require.NoError(t, err)
	require.NotNil(t, plan.CreateLedger)
	assert.InDelta(t, 120, plan.CreateLedger.Amount, 1e-9)
}

func TestPlanTransitionPaidZeroRateCreatesNoLedger(t *testing.T) {
	plan, err := PlanTransition(occurrence(model.PaymentStatusPending, 60), model.PaymentStatusPaid, TransitionInput{})
	require.NoError(t, err)
	assert.Nil(t, plan.CreateLedger)
	assert.Empty(t, plan.LedgerTransactionID)
}

func TestPlanTransitionPaidToPackageRetiresLedger(t *testing.T) {
	occ := occurrence(model.PaymentStatusPaid, 60)
	in := TransitionInput{
		Eligible: []PackageWithBalance{eligible("pkg-1", 2)},
		Policy:   OverdrawReject,
	}

	plan, err := PlanTransition(occ, model.PaymentStatusPackage, in)
	require.NoError(t, err)

	// The old ledger row is deleted in the same atomic batch that links
	// the package: the occurrence never owns both.
	assert.Equal(t, "ledger-old", plan.DeleteLedgerID)
	assert.Nil(t, plan.CreateLedger)
	assert.Equal(t, "pkg-1", plan.PackageID)
	assert.Empty(t, plan.LedgerTransactionID)
}

func TestPlanTransitionPackageNoCredit(t *testing.T) {
	occ := occurrence(model.PaymentStatusPending, 60)

	_, err := PlanTransition(occ, model.PaymentStatusPackage, TransitionInput{Policy: OverdrawReject})
	assert.ErrorIs(t, err, ErrNoCreditAvailable)
}

func TestPlanTransitionOverdrawPolicies(t *testing.T) {
	// 2h class, 1.5h remaining on the only package.
	occ := occurrence(model.PaymentStatusPending, 120)
	partial := []PackageWithBalance{eligible("pkg-1", 1.5)}

	t.Run("reject policy refuses partial cover", func(t *testing.T) {
		_, err := PlanTransition(occ, model.PaymentStatusPackage, TransitionInput{
			Eligible: partial,
			Policy:   OverdrawReject,
		})
		assert.ErrorIs(t, err, ErrNoCreditAvailable)
	})

	t.Run("allow policy draws the package negative", func(t *testing.T) {
		plan, err := PlanTransition(occ, model.PaymentStatusPackage, TransitionInput{
			Eligible: partial,
			Policy:   OverdrawAllow,
		})
		require.NoError(t, err)
		assert.Equal(t, "pkg-1", plan.PackageID)
	})

	t.Run("reject policy skips to a package that covers", func(t *testing.T) {
		plan, err := PlanTransition(occ, model.PaymentStatusPackage, TransitionInput{
			Eligible: []PackageWithBalance{eligible("pkg-1", 1.5), eligible("pkg-2", 4)},
			Policy:   OverdrawReject,
		})
		require.NoError(t, err)
		assert.Equal(t, "pkg-2", plan.PackageID)
	})
}

func TestPlanTransitionClearsPriorLinks(t *testing.T) {
	t.Run("package to paid", func(t *testing.T) {
		occ := occurrence(model.PaymentStatusPackage, 60)
		plan, err := PlanTransition(occ, model.PaymentStatusPaid, TransitionInput{
			Teacher: &model.Teacher{HourlyRate: 50},
		})
		require.NoError(t, err)
		assert.Empty(t, plan.PackageID)
		require.NotNil(t, plan.CreateLedger)
	})

	t.Run("paid to pending deletes ledger", func(t *testing.T) {
		occ := occurrence(model.PaymentStatusPaid, 60)
		plan, err := PlanTransition(occ, model.PaymentStatusPending, TransitionInput{})
		require.NoError(t, err)
		assert.Equal(t, "ledger-old", plan.DeleteLedgerID)
		assert.Empty(t, plan.PackageID)
		assert.Empty(t, plan.LedgerTransactionID)
	})

	t.Run("paid to free deletes ledger", func(t *testing.T) {
		occ := occurrence(model.PaymentStatusPaid, 60)
		plan, err := PlanTransition(occ, model.PaymentStatusFree, TransitionInput{})
		require.NoError(t, err)
		assert.Equal(t, "ledger-old", plan.DeleteLedgerID)
	})
}
