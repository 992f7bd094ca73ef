package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(b *base.Repository) *TeacherRepository {
	return &TeacherRepository{Repository: b}
}

// Create inserts a teacher record. Availability is stored as JSONB.
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}

	availability, err := json.Marshal(teacher.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	query := `
		INSERT INTO teachers (id, name, hourly_rate, availability)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err = r.DB(ctx).QueryRow(ctx, query, teacher.ID, teacher.Name, teacher.HourlyRate, availability).
		Scan(&teacher.CreatedAt)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// GetByID returns the teacher, or nil when it does not exist.
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	query := `SELECT id, name, hourly_rate, availability, created_at FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}
	return teacher, nil
}

// GetAll returns every teacher.
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*model.Teacher, error) {
	rows, err := r.DB(ctx).Query(ctx,
		`SELECT id, name, hourly_rate, availability, created_at FROM teachers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	var teacher model.Teacher
	var availability []byte

	err := row.Scan(&teacher.ID, &teacher.Name, &teacher.HourlyRate, &availability, &teacher.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &teacher.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %w", err)
		}
	}
	return &teacher, nil
}
