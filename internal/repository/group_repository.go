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

type GroupRepository struct {
	*base.Repository
}

func NewGroupRepository(b *base.Repository) *GroupRepository {
	return &GroupRepository{Repository: b}
}

// Create inserts a new class group. The schedule is stored as JSONB.
func (r *GroupRepository) Create(ctx context.Context, group *model.ClassGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}

	schedule, err := json.Marshal(group.Schedule)
	if err != nil {
		return fmt.Errorf("marshal group schedule: %w", err)
	}

	query := `
		INSERT INTO class_groups (id, name, teacher_id, discipline, status, schedule, single_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = r.DB(ctx).QueryRow(
		ctx, query,
		group.ID,
		group.Name,
		group.TeacherID,
		group.Discipline,
		group.Status,
		schedule,
		group.SingleDurationMinutes,
	).Scan(&group.CreatedAt, &group.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create class group: %w", err)
	}
	return nil
}

// GetByID returns the group, or nil when it does not exist.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*model.ClassGroup, error) {
	query := `
		SELECT id, name, teacher_id, discipline, status, schedule, single_duration_minutes, created_at, updated_at
		FROM class_groups
		WHERE id = $1
	`

	group, err := scanGroup(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class group by id: %w", err)
	}
	return group, nil
}

// GetActiveByTeacherID returns a teacher's active groups.
func (r *GroupRepository) GetActiveByTeacherID(ctx context.Context, teacherID string) ([]*model.ClassGroup, error) {
	query := `
		SELECT id, name, teacher_id, discipline, status, schedule, single_duration_minutes, created_at, updated_at
		FROM class_groups
		WHERE teacher_id = $1 AND status = 'active'
		ORDER BY name
	`
	return r.queryMany(ctx, query, teacherID)
}

// UpdateSchedule rewrites the group's schedule definition.
func (r *GroupRepository) UpdateSchedule(ctx context.Context, id string, schedule model.ClassGroupSchedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("marshal group schedule: %w", err)
	}

	tag, err := r.DB(ctx).Exec(ctx,
		`UPDATE class_groups SET schedule = $2, updated_at = now() WHERE id = $1`,
		id, raw)
	if err != nil {
		return fmt.Errorf("update group schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("class group not found")
	}
	return nil
}

// Archive marks the group archived; it stops materializing occurrences on
// the next expansion.
func (r *GroupRepository) Archive(ctx context.Context, id string) error {
	tag, err := r.DB(ctx).Exec(ctx,
		`UPDATE class_groups SET status = 'archived', updated_at = now() WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("archive class group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("class group not found")
	}
	return nil
}

func (r *GroupRepository) queryMany(ctx context.Context, query string, args ...any) ([]*model.ClassGroup, error) {
	rows, err := r.DB(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query class groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.ClassGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func scanGroup(row pgx.Row) (*model.ClassGroup, error) {
	var group model.ClassGroup
	var schedule []byte

	err := row.Scan(
		&group.ID,
		&group.Name,
		&group.TeacherID,
		&group.Discipline,
		&group.Status,
		&schedule,
		&group.SingleDurationMinutes,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(schedule, &group.Schedule); err != nil {
		return nil, fmt.Errorf("unmarshal group schedule: %w", err)
	}
	return &group, nil
}
