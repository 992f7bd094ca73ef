package repository

import (
	"context"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
)

// LedgerRepository persists ledger transactions. Rows for class billing
// are only ever written or removed through the payment service's atomic
// transition; there is deliberately no generic update.
type LedgerRepository struct {
	*base.Repository
}

func NewLedgerRepository(b *base.Repository) *LedgerRepository {
	return &LedgerRepository{Repository: b}
}

// Insert writes a new ledger transaction.
func (r *LedgerRepository) Insert(ctx context.Context, tx *model.LedgerTransaction) error {
	query := `
		INSERT INTO ledger_transactions (id, type, date, amount, student_id, description, registered_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		tx.ID,
		tx.Type,
		tx.Date,
		tx.Amount,
		tx.StudentID,
		tx.Description,
		tx.RegisteredByID,
	).Scan(&tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}

// GetByStudentID returns a student's transactions, newest first.
func (r *LedgerRepository) GetByStudentID(ctx context.Context, studentID string) ([]*model.LedgerTransaction, error) {
	query := `
		SELECT id, type, date, amount, student_id, description, registered_by_id, created_at
		FROM ledger_transactions
		WHERE student_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("query ledger transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.LedgerTransaction
	for rows.Next() {
		var tx model.LedgerTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.Type,
			&tx.Date,
			&tx.Amount,
			&tx.StudentID,
			&tx.Description,
			&tx.RegisteredByID,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, rows.Err()
}

// Delete removes a transaction. Deleting an already absent row is not an
// error: the paired occurrence update is the authority on ownership.
func (r *LedgerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB(ctx).Exec(ctx, `DELETE FROM ledger_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger transaction: %w", err)
	}
	return nil
}
