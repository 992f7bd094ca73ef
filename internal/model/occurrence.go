package model

import (
	"fmt"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
)

type OccurrenceStatus string

const (
	OccurrenceStatusScheduled   OccurrenceStatus = "scheduled"
	OccurrenceStatusCompleted   OccurrenceStatus = "completed"
	OccurrenceStatusCanceled    OccurrenceStatus = "canceled"
	OccurrenceStatusRescheduled OccurrenceStatus = "rescheduled"
)

// Valid reports whether the status is one of the known values.
func (s OccurrenceStatus) Valid() bool {
	switch s {
	case OccurrenceStatusScheduled, OccurrenceStatusCompleted,
		OccurrenceStatusCanceled, OccurrenceStatusRescheduled:
		return true
	}
	return false
}

// RequiresReason reports whether a status change into s must carry a reason.
func (s OccurrenceStatus) RequiresReason() bool {
	return s == OccurrenceStatusCanceled || s == OccurrenceStatusRescheduled
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPackage PaymentStatus = "package"
	PaymentStatusFree    PaymentStatus = "free"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPackage, PaymentStatusFree:
		return true
	}
	return false
}

type Location string

const (
	LocationOnline   Location = "online"
	LocationInPerson Location = "in_person"
)

func (l Location) Valid() bool {
	return l == LocationOnline || l == LocationInPerson
}

// ClassOccurrence is a single dated, timed individual class.
// Cancellation is a status change; occurrences are never physically deleted.
type ClassOccurrence struct {
	ID                  string           `json:"id"`
	Date                time.Time        `json:"date"` // normalized UTC calendar date
	Time                string           `json:"time"` // local "HH:MM"
	DurationMinutes     int              `json:"duration_minutes"`
	StudentID           string           `json:"student_id"`
	TeacherID           string           `json:"teacher_id"`
	Discipline          string           `json:"discipline"`
	Location            Location         `json:"location"`
	Status              OccurrenceStatus `json:"status"`
	StatusChangeReason  string           `json:"status_change_reason"`
	PaymentStatus       PaymentStatus    `json:"payment_status"`
	PackageID           string           `json:"package_id"`            // set iff payment_status = package
	LedgerTransactionID string           `json:"ledger_transaction_id"` // set iff payment_status = paid
	ReportRegistered    bool             `json:"report_registered"`
	Revision            int64            `json:"revision"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// Hours returns the class duration in hours.
func (o *ClassOccurrence) Hours() float64 {
	return float64(o.DurationMinutes) / 60.0
}

// EndMinutes returns the minute-of-day at which the class ends.
func (o *ClassOccurrence) EndMinutes() int {
	return timeutil.MinutesOfDayOrZero(o.Time) + o.DurationMinutes
}

// Validate checks the occurrence's internal invariants.
func (o *ClassOccurrence) Validate() error {
	if o.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d", o.DurationMinutes)
	}
	if _, err := timeutil.MinutesOfDay(o.Time); err != nil {
		return fmt.Errorf("class time: %w", err)
	}
	if !o.Location.Valid() {
		return fmt.Errorf("unknown location %q", o.Location)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("unknown status %q", o.Status)
	}
	if !o.PaymentStatus.Valid() {
		return fmt.Errorf("unknown payment status %q", o.PaymentStatus)
	}
	if o.Status.RequiresReason() && o.StatusChangeReason == "" {
		return fmt.Errorf("status %q requires a reason", o.Status)
	}
	if o.PackageID != "" && o.LedgerTransactionID != "" {
		return fmt.Errorf("package and ledger references are mutually exclusive")
	}
	if o.PackageID != "" && o.PaymentStatus != PaymentStatusPackage {
		return fmt.Errorf("package reference set while payment status is %q", o.PaymentStatus)
	}
	if o.LedgerTransactionID != "" && o.PaymentStatus != PaymentStatusPaid {
		return fmt.Errorf("ledger reference set while payment status is %q", o.PaymentStatus)
	}
	return nil
}
