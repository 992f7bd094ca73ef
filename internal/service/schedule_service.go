package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/repository"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/schedule"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
	"go.uber.org/zap"
)

// ScheduleService assembles the calendar read side: individual
// occurrences plus materialized group occurrences, projected onto
// per-teacher day timelines.
type ScheduleService struct {
	occurrenceRepo *repository.OccurrenceRepository
	groupRepo      *repository.GroupRepository
	teacherRepo    *repository.TeacherRepository
	clock          timeutil.Clock
	logger         *zap.Logger
}

func NewScheduleService(
	occurrenceRepo *repository.OccurrenceRepository,
	groupRepo *repository.GroupRepository,
	teacherRepo *repository.TeacherRepository,
	clock timeutil.Clock,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		occurrenceRepo: occurrenceRepo,
		groupRepo:      groupRepo,
		teacherRepo:    teacherRepo,
		clock:          clock,
		logger:         logger,
	}
}

// CalendarView is everything the calendar renders for one teacher's
// rolling window.
type CalendarView struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Individual  []*model.ClassOccurrence
	Group       []model.GroupOccurrence
}

// CalendarWindow returns the view for an explicit window.
func (s *ScheduleService) CalendarWindow(ctx context.Context, teacherID string, windowStart, windowEnd time.Time) (*CalendarView, error) {
	windowStart = timeutil.NormalizeDate(windowStart)
	windowEnd = timeutil.NormalizeDate(windowEnd)

	occurrences, err := s.occurrenceRepo.GetByTeacherAndDateRange(ctx, teacherID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.GetActiveByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return &CalendarView{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Individual:  occurrences,
		Group:       schedule.Materialize(groups, windowStart, windowEnd, schedule.MaterializeOpts{}),
	}, nil
}

// Calendar returns the view for the default rolling window around today.
func (s *ScheduleService) Calendar(ctx context.Context, teacherID string) (*CalendarView, error) {
	start, end := schedule.DefaultWindow(s.clock)
	return s.CalendarWindow(ctx, teacherID, start, end)
}

// DayTimeline lays out one teacher's day. A zero view window uses the
// default display hours.
func (s *ScheduleService) DayTimeline(ctx context.Context, teacherID string, day time.Time, view schedule.HourWindow) (*schedule.DayLayout, error) {
	day = timeutil.NormalizeDate(day)

	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher not found")
	}

	individual, err := s.occurrenceRepo.GetByTeacherAndDateRange(ctx, teacherID, day, day)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.GetActiveByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	materialized := schedule.Materialize(groups, day, day, schedule.MaterializeOpts{})

	entries := make([]schedule.Entry, 0, len(individual)+len(materialized))
	for _, occ := range individual {
		entries = append(entries, schedule.Entry{
			ID:              occ.ID,
			Kind:            schedule.EntryKindIndividual,
			Label:           occ.Discipline,
			Time:            occ.Time,
			DurationMinutes: occ.DurationMinutes,
			PaymentStatus:   occ.PaymentStatus,
			Canceled:        occ.Status == model.OccurrenceStatusCanceled,
		})
	}

	groupNames := make(map[string]string)
	for _, group := range groups {
		groupNames[group.ID] = group.Name
	}

	for _, occ := range materialized {
		entries = append(entries, schedule.Entry{
			ID:              occ.ID,
			Kind:            schedule.EntryKindGroup,
			Label:           groupNames[occ.GroupID],
			Time:            occ.Time,
			DurationMinutes: occ.DurationMinutes,
		})
	}

	layout := schedule.Layout(entries, teacher, day, view)
	return &layout, nil
}

// RenderDay renders the day's timeline as a PNG.
func (s *ScheduleService) RenderDay(ctx context.Context, teacherID string, day time.Time, view schedule.HourWindow) ([]byte, error) {
	layout, err := s.DayTimeline(ctx, teacherID, day, view)
	if err != nil {
		return nil, err
	}
	return schedule.RenderDayImage(*layout)
}

// Teachers lists every teacher, for the calendar's teacher picker.
func (s *ScheduleService) Teachers(ctx context.Context) ([]*model.Teacher, error) {
	return s.teacherRepo.GetAll(ctx)
}

// CheckAvailability reports whether a candidate (date, time) falls on one
// of the teacher's declared slots. Advisory only; scheduling outside
// availability is allowed.
func (s *ScheduleService) CheckAvailability(ctx context.Context, teacherID string, date time.Time, hhmm string) (bool, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return false, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return false, fmt.Errorf("teacher not found")
	}
	return schedule.IsWithinAvailability(teacher, date, hhmm), nil
}
