package repository

import (
	"context"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PackageRepository struct {
	*base.Repository
}

func NewPackageRepository(b *base.Repository) *PackageRepository {
	return &PackageRepository{Repository: b}
}

// Create inserts a new class package.
func (r *PackageRepository) Create(ctx context.Context, pkg *model.ClassPackage) error {
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}

	query := `
		INSERT INTO class_packages (id, student_id, total_hours, purchase_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		pkg.ID,
		pkg.StudentID,
		pkg.TotalHours,
		pkg.PurchaseDate,
		pkg.Status,
	).Scan(&pkg.CreatedAt)

	if err != nil {
		return fmt.Errorf("create class package: %w", err)
	}
	return nil
}

// GetByID returns the package, or nil when it does not exist.
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*model.ClassPackage, error) {
	query := `
		SELECT id, student_id, total_hours, purchase_date, status, created_at
		FROM class_packages
		WHERE id = $1
	`

	pkg, err := scanPackage(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class package by id: %w", err)
	}
	return pkg, nil
}

// GetByStudentID returns all of a student's packages, oldest purchase first.
func (r *PackageRepository) GetByStudentID(ctx context.Context, studentID string) ([]*model.ClassPackage, error) {
	query := `
		SELECT id, student_id, total_hours, purchase_date, status, created_at
		FROM class_packages
		WHERE student_id = $1
		ORDER BY purchase_date
	`
	return r.queryMany(ctx, query, studentID)
}

// GetActiveByStudentID returns a student's active packages, oldest first.
func (r *PackageRepository) GetActiveByStudentID(ctx context.Context, studentID string) ([]*model.ClassPackage, error) {
	query := `
		SELECT id, student_id, total_hours, purchase_date, status, created_at
		FROM class_packages
		WHERE student_id = $1 AND status = 'active'
		ORDER BY purchase_date
	`
	return r.queryMany(ctx, query, studentID)
}

// GetActive returns every active package.
func (r *PackageRepository) GetActive(ctx context.Context) ([]*model.ClassPackage, error) {
	query := `
		SELECT id, student_id, total_hours, purchase_date, status, created_at
		FROM class_packages
		WHERE status = 'active'
		ORDER BY purchase_date
	`
	return r.queryMany(ctx, query)
}

// UpdateStatus changes the package's status.
func (r *PackageRepository) UpdateStatus(ctx context.Context, id string, status model.PackageStatus) error {
	tag, err := r.DB(ctx).Exec(ctx,
		`UPDATE class_packages SET status = $2 WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update package status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("class package not found")
	}
	return nil
}

func (r *PackageRepository) queryMany(ctx context.Context, query string, args ...any) ([]*model.ClassPackage, error) {
	rows, err := r.DB(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query class packages: %w", err)
	}
	defer rows.Close()

	var packages []*model.ClassPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class package: %w", err)
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func scanPackage(row pgx.Row) (*model.ClassPackage, error) {
	var pkg model.ClassPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.StudentID,
		&pkg.TotalHours,
		&pkg.PurchaseDate,
		&pkg.Status,
		&pkg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}
