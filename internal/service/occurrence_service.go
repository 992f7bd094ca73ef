package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/notify"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/schedule"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OccurrenceService owns the scheduling lifecycle of individual class
// occurrences: creation, rescheduling, cancellation and report flags.
// Payment state is the PaymentService's job.
type OccurrenceService struct {
	occurrenceRepo *repository.OccurrenceRepository
	teacherRepo    *repository.TeacherRepository
	studentRepo    *repository.StudentRepository
	validate       *validator.Validate
	notifier       *notify.Notifier
	logger         *zap.Logger
}

func NewOccurrenceService(
	occurrenceRepo *repository.OccurrenceRepository,
	teacherRepo *repository.TeacherRepository,
	studentRepo *repository.StudentRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *OccurrenceService {
	return &OccurrenceService{
		occurrenceRepo: occurrenceRepo,
		teacherRepo:    teacherRepo,
		studentRepo:    studentRepo,
		validate:       validator.New(),
		notifier:       notifier,
		logger:         logger,
	}
}

// ScheduleInput is the boundary shape for creating an occurrence. Time is
// validated strictly here; malformed input never reaches a write.
type ScheduleInput struct {
	Date            time.Time      `validate:"required"`
	Time            string         `validate:"required"`
	DurationMinutes int            `validate:"required,gt=0"`
	StudentID       string         `validate:"required"`
	TeacherID       string         `validate:"required"`
	Discipline      string         `validate:"required"`
	Location        model.Location `validate:"required,oneof=online in_person"`
}

// ScheduleResult carries the created occurrence plus the advisory
// availability warning.
type ScheduleResult struct {
	Occurrence          *model.ClassOccurrence
	OutsideAvailability bool
}

// Schedule creates a new occurrence in scheduled/pending state.
func (s *OccurrenceService) Schedule(ctx context.Context, input ScheduleInput) (*ScheduleResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid schedule input: %w", err)
	}
	if _, err := timeutil.MinutesOfDay(input.Time); err != nil {
		return nil, fmt.Errorf("invalid schedule input: %w", err)
	}

	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student not found")
	}

	teacher, err := s.teacherRepo.GetByID(ctx, input.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher not found")
	}

	occ := &model.ClassOccurrence{
		Date:            timeutil.NormalizeDate(input.Date),
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		StudentID:       input.StudentID,
		TeacherID:       input.TeacherID,
		Discipline:      input.Discipline,
		Location:        input.Location,
		Status:          model.OccurrenceStatusScheduled,
		PaymentStatus:   model.PaymentStatusPending,
	}

	if err := occ.Validate(); err != nil {
		return nil, fmt.Errorf("invalid occurrence: %w", err)
	}

	if err := s.occurrenceRepo.Create(ctx, occ); err != nil {
		return nil, err
	}

	s.logger.Info("Class occurrence scheduled",
		zap.String("occurrence_id", occ.ID),
		zap.String("teacher_id", occ.TeacherID),
		zap.String("student_id", occ.StudentID),
		zap.Time("date", occ.Date),
		zap.String("time", occ.Time),
	)
	s.publish(occ.ID)

	return &ScheduleResult{
		Occurrence:          occ,
		OutsideAvailability: !schedule.IsWithinAvailability(teacher, occ.Date, occ.Time),
	}, nil
}

// Reschedule moves an occurrence to a new date and time. The reason is
// mandatory; the old slot stays visible through the rescheduled status.
func (s *OccurrenceService) Reschedule(ctx context.Context, id string, newDate time.Time, newTime, reason string) (*model.ClassOccurrence, error) {
	if reason == "" {
		return nil, fmt.Errorf("reschedule requires a reason")
	}
	if _, err := timeutil.MinutesOfDay(newTime); err != nil {
		return nil, fmt.Errorf("invalid reschedule time: %w", err)
	}

	occ, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	occ.Date = timeutil.NormalizeDate(newDate)
	occ.Time = newTime
	occ.Status = model.OccurrenceStatusRescheduled
	occ.StatusChangeReason = reason

	if err := s.occurrenceRepo.UpdateSchedule(ctx, occ); err != nil {
		return nil, err
	}

	s.logger.Info("Class occurrence rescheduled",
		zap.String("occurrence_id", occ.ID),
		zap.Time("date", occ.Date),
		zap.String("time", occ.Time),
	)
	s.publish(occ.ID)
	return occ, nil
}

// Cancel marks an occurrence canceled. Cancellation is a status, not a
// removal; the record and its payment state stay intact.
func (s *OccurrenceService) Cancel(ctx context.Context, id, reason string) (*model.ClassOccurrence, error) {
	if reason == "" {
		return nil, fmt.Errorf("cancellation requires a reason")
	}

	occ, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	occ.Status = model.OccurrenceStatusCanceled
	occ.StatusChangeReason = reason

	if err := s.occurrenceRepo.UpdateSchedule(ctx, occ); err != nil {
		return nil, err
	}

	s.logger.Info("Class occurrence canceled",
		zap.String("occurrence_id", occ.ID),
		zap.String("reason", reason),
	)
	s.publish(occ.ID)
	return occ, nil
}

// Complete marks an occurrence as given.
func (s *OccurrenceService) Complete(ctx context.Context, id string) (*model.ClassOccurrence, error) {
	occ, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	occ.Status = model.OccurrenceStatusCompleted
	occ.StatusChangeReason = ""

	if err := s.occurrenceRepo.UpdateSchedule(ctx, occ); err != nil {
		return nil, err
	}

	s.logger.Info("Class occurrence completed", zap.String("occurrence_id", occ.ID))
	s.publish(occ.ID)
	return occ, nil
}

// MarkReportRegistered flags that the class report was filed.
func (s *OccurrenceService) MarkReportRegistered(ctx context.Context, id string) (*model.ClassOccurrence, error) {
	occ, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	occ.ReportRegistered = true

	if err := s.occurrenceRepo.UpdateSchedule(ctx, occ); err != nil {
		return nil, err
	}

	s.publish(occ.ID)
	return occ, nil
}

// GetByID returns the occurrence, or an error if it does not exist.
func (s *OccurrenceService) GetByID(ctx context.Context, id string) (*model.ClassOccurrence, error) {
	return s.getExisting(ctx, id)
}

func (s *OccurrenceService) getExisting(ctx context.Context, id string) (*model.ClassOccurrence, error) {
	occ, err := s.occurrenceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get occurrence: %w", err)
	}
	if occ == nil {
		return nil, fmt.Errorf("class occurrence not found")
	}
	return occ, nil
}

func (s *OccurrenceService) publish(id string) {
	if s.notifier != nil {
		s.notifier.Publish(notify.Event{Kind: notify.KindOccurrence, ID: id})
	}
}
