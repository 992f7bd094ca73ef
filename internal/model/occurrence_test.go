package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validOccurrence() ClassOccurrence {
	return ClassOccurrence{
		ID:              "occ-1",
		Date:            time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Time:            "14:00",
		DurationMinutes: 60,
		StudentID:       "s1",
		TeacherID:       "t1",
		Location:        LocationOnline,
		Status:          OccurrenceStatusScheduled,
		PaymentStatus:   PaymentStatusPending,
		Revision:        1,
	}
}

func TestClassOccurrenceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *ClassOccurrence)
		wantErr bool
	}{
		{name: "valid", mutate: func(o *ClassOccurrence) {}},
		{
			name:    "zero duration",
			mutate:  func(o *ClassOccurrence) { o.DurationMinutes = 0 },
			wantErr: true,
		},
		{
			name:    "malformed time",
			mutate:  func(o *ClassOccurrence) { o.Time = "14h00" },
			wantErr: true,
		},
		{
			name:    "unknown location",
			mutate:  func(o *ClassOccurrence) { o.Location = "hybrid" },
			wantErr: true,
		},
		{
			name:    "canceled without reason",
			mutate:  func(o *ClassOccurrence) { o.Status = OccurrenceStatusCanceled },
			wantErr: true,
		},
		{
			name: "canceled with reason",
			mutate: func(o *ClassOccurrence) {
				o.Status = OccurrenceStatusCanceled
				o.StatusChangeReason = "student sick"
			},
		},
		{
			name:    "rescheduled without reason",
			mutate:  func(o *ClassOccurrence) { o.Status = OccurrenceStatusRescheduled },
			wantErr: true,
		},
		{
			name: "package and ledger both set",
			mutate: func(o *ClassOccurrence) {
				o.PaymentStatus = PaymentStatusPackage
				o.PackageID = "pkg-1"
				o.LedgerTransactionID = "tx-1"
			},
			wantErr: true,
		},
		{
			name: "package reference on paid status",
			mutate: func(o *ClassOccurrence) {
				o.PaymentStatus = PaymentStatusPaid
				o.PackageID = "pkg-1"
			},
			wantErr: true,
		},
		{
			name: "ledger reference on package status",
			mutate: func(o *ClassOccurrence) {
				o.PaymentStatus = PaymentStatusPackage
				o.LedgerTransactionID = "tx-1"
			},
			wantErr: true,
		},
		{
			name: "package reference matches status",
			mutate: func(o *ClassOccurrence) {
				o.PaymentStatus = PaymentStatusPackage
				o.PackageID = "pkg-1"
			},
		},
		{
			name: "ledger reference matches status",
			mutate: func(o *ClassOccurrence) {
				o.PaymentStatus = PaymentStatusPaid
				o.LedgerTransactionID = "tx-1"
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			occ := validOccurrence()
			tc.mutate(&occ)
			err := occ.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassOccurrenceHours(t *testing.T) {
	occ := validOccurrence()
	occ.DurationMinutes = 90
	assert.InDelta(t, 1.5, occ.Hours(), 1e-9)
	assert.Equal(t, 14*60+90, occ.EndMinutes())
}

func TestGroupOccurrenceIDDeterministic(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	first := GroupOccurrenceID("g1", day)
	second := GroupOccurrenceID("g1", day)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, GroupOccurrenceID("g1", day.AddDate(0, 0, 1)))
	assert.NotEqual(t, first, GroupOccurrenceID("g2", day))
}
