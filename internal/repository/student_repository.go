package repository

import (
	"context"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
	"github.com/google/uuid"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(b *base.Repository) *StudentRepository {
	return &StudentRepository{Repository: b}
}

// Create inserts a student record.
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	err := r.DB(ctx).QueryRow(ctx,
		`INSERT INTO students (id, name) VALUES ($1, $2) RETURNING created_at`,
		student.ID, student.Name).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// GetByID returns the student, or nil when it does not exist.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.DB(ctx).QueryRow(ctx,
		`SELECT id, name, created_at FROM students WHERE id = $1`, id).
		Scan(&student.ID, &student.Name, &student.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}
	return &student, nil
}
