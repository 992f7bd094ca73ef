package model

import "time"

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
)

// LedgerTransaction is a financial record linked 1:1 to an occurrence
// billed as paid. Its lifecycle is owned exclusively by the payment state
// machine: created on a transition into paid, deleted on the transition
// out of it. No other code path touches these rows.
type LedgerTransaction struct {
	ID             string          `json:"id"`
	Type           TransactionType `json:"type"`
	Date           time.Time       `json:"date"`
	Amount         float64         `json:"amount"`
	StudentID      string          `json:"student_id"`
	Description    string          `json:"description"`
	RegisteredByID string          `json:"registered_by_id"`
	CreatedAt      time.Time       `json:"created_at"`
}
