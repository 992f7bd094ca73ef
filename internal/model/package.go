package model

import "time"

type PackageStatus string

const (
	PackageStatusActive   PackageStatus = "active"
	PackageStatusArchived PackageStatus = "archived"
)

// ClassPackage is a prepaid balance of class hours purchased by a student.
// Used and remaining hours are always derived from the current occurrences
// linked to the package, never stored.
type ClassPackage struct {
	ID           string        `json:"id"`
	StudentID    string        `json:"student_id"`
	TotalHours   float64       `json:"total_hours"`
	PurchaseDate time.Time     `json:"purchase_date"`
	Status       PackageStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// IsActive reports whether the package can still be selected for billing.
func (p *ClassPackage) IsActive() bool {
	return p.Status == PackageStatusActive
}
