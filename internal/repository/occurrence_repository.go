package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OccurrenceRepository struct {
	*base.Repository
}

func NewOccurrenceRepository(b *base.Repository) *OccurrenceRepository {
	return &OccurrenceRepository{Repository: b}
}

const occurrenceColumns = `
	id, date, time, duration_minutes, student_id, teacher_id, discipline,
	location, status, status_change_reason, payment_status,
	COALESCE(package_id, ''), COALESCE(ledger_transaction_id, ''),
	report_registered, revision, created_at, updated_at
`

// Create inserts a new occurrence with revision 1.
func (r *OccurrenceRepository) Create(ctx context.Context, occ *model.ClassOccurrence) error {
	if occ.ID == "" {
		occ.ID = uuid.NewString()
	}

	query := `
		INSERT INTO class_occurrences (
			id, date, time, duration_minutes, student_id, teacher_id,
			discipline, location, status, status_change_reason,
			payment_status, package_id, ledger_transaction_id,
			report_registered, revision
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			NULLIF($12, ''), NULLIF($13, ''), $14, 1)
		RETURNING revision, created_at, updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		occ.ID,
		occ.Date,
		occ.Time,
		occ.DurationMinutes,
		occ.StudentID,
		occ.TeacherID,
		occ.Discipline,
		occ.Location,
		occ.Status,
		occ.StatusChangeReason,
		occ.PaymentStatus,
		occ.PackageID,
		occ.LedgerTransactionID,
		occ.ReportRegistered,
	).Scan(&occ.Revision, &occ.CreatedAt, &occ.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create occurrence: %w", err)
	}
	return nil
}

// GetByID returns the occurrence, or nil when it does not exist.
func (r *OccurrenceRepository) GetByID(ctx context.Context, id string) (*model.ClassOccurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM class_occurrences WHERE id = $1`

	occ, err := scanOccurrence(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get occurrence by id: %w", err)
	}
	return occ, nil
}

// GetByStudentID returns every occurrence of a student.
func (r *OccurrenceRepository) GetByStudentID(ctx context.Context, studentID string) ([]*model.ClassOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM class_occurrences
		WHERE student_id = $1
		ORDER BY date, time
	`
	return r.queryMany(ctx, query, studentID)
}

// GetByPackageID returns the occurrences billed against a package.
func (r *OccurrenceRepository) GetByPackageID(ctx context.Context, packageID string) ([]*model.ClassOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM class_occurrences
		WHERE package_id = $1
		ORDER BY date, time
	`
	return r.queryMany(ctx, query, packageID)
}

// GetByTeacherAndDateRange returns a teacher's occurrences inside the
// inclusive [start, end] date window.
func (r *OccurrenceRepository) GetByTeacherAndDateRange(ctx context.Context, teacherID string, start, end time.Time) ([]*model.ClassOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM class_occurrences
		WHERE teacher_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, time
	`
	return r.queryMany(ctx, query, teacherID, start, end)
}

// UpdateSchedule rewrites the occurrence's scheduling fields.
func (r *OccurrenceRepository) UpdateSchedule(ctx context.Context, occ *model.ClassOccurrence) error {
	query := `
		UPDATE class_occurrences
		SET date = $2, time = $3, duration_minutes = $4, status = $5,
			status_change_reason = $6, report_registered = $7,
			revision = revision + 1, updated_at = now()
		WHERE id = $1
		RETURNING revision, updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		occ.ID,
		occ.Date,
		occ.Time,
		occ.DurationMinutes,
		occ.Status,
		occ.StatusChangeReason,
		occ.ReportRegistered,
	).Scan(&occ.Revision, &occ.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("occurrence not found")
		}
		return fmt.Errorf("update occurrence: %w", err)
	}
	return nil
}

// UpdatePayment rewrites the occurrence's payment fields guarded by a
// revision compare-and-swap. A revision mismatch means another session
// changed the occurrence since it was read; the write is rejected with
// ErrConcurrentModification and nothing is modified.
func (r *OccurrenceRepository) UpdatePayment(ctx context.Context, id string, expectedRevision int64, status model.PaymentStatus, packageID, ledgerTransactionID string) error {
	query := `
		UPDATE class_occurrences
		SET payment_status = $3, package_id = NULLIF($4, ''),
			ledger_transaction_id = NULLIF($5, ''),
			revision = revision + 1, updated_at = now()
		WHERE id = $1 AND revision = $2
	`

	tag, err := r.DB(ctx).Exec(ctx, query, id, expectedRevision, status, packageID, ledgerTransactionID)
	if err != nil {
		return fmt.Errorf("update occurrence payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (r *OccurrenceRepository) queryMany(ctx context.Context, query string, args ...any) ([]*model.ClassOccurrence, error) {
	rows, err := r.DB(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query occurrences: %w", err)
	}
	defer rows.Close()

	var occurrences []*model.ClassOccurrence
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences, rows.Err()
}

func scanOccurrence(row pgx.Row) (*model.ClassOccurrence, error) {
	var occ model.ClassOccurrence
	err := row.Scan(
		&occ.ID,
		&occ.Date,
		&occ.Time,
		&occ.DurationMinutes,
		&occ.StudentID,
		&occ.TeacherID,
		&occ.Discipline,
		&occ.Location,
		&occ.Status,
		&occ.StatusChangeReason,
		&occ.PaymentStatus,
		&occ.PackageID,
		&occ.LedgerTransactionID,
		&occ.ReportRegistered,
		&occ.Revision,
		&occ.CreatedAt,
		&occ.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &occ, nil
}
