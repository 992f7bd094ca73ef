package schedule

import (
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
)

// Default calendar window around "today": 2 months back, 3 months ahead.
const (
	defaultWindowMonthsBack  = 2
	defaultWindowMonthsAhead = 3
)

// MaterializeOpts tunes window handling.
type MaterializeOpts struct {
	// IncludeOutOfWindowSingles treats the window as advisory for single
	// sessions: a single occurrence outside the window is still emitted on
	// its own date so the caller can show it.
	IncludeOutOfWindowSingles bool
}

// DefaultWindow returns the calendar view's materialization window around
// the clock's current date.
func DefaultWindow(clock timeutil.Clock) (time.Time, time.Time) {
	today := timeutil.NormalizeDate(clock.Now())
	return today.AddDate(0, -defaultWindowMonthsBack, 0), today.AddDate(0, defaultWindowMonthsAhead, 0)
}

// Materialize expands the active groups' schedule definitions into concrete
// occurrences for the inclusive [windowStart, windowEnd] date window.
//
// The expansion is pure and deterministic: occurrence ids derive from
// (group, date), so calling twice with the same inputs yields the same set.
// Archived groups and invalid or zero-duration intervals are skipped.
func Materialize(groups []*model.ClassGroup, windowStart, windowEnd time.Time, opts MaterializeOpts) []model.GroupOccurrence {
	var occurrences []model.GroupOccurrence

	for _, group := range groups {
		if !group.IsActive() {
			continue
		}

		switch group.Schedule.Type {
		case model.ScheduleTypeRecurring:
			occurrences = append(occurrences, materializeRecurring(group, windowStart, windowEnd)...)
		case model.ScheduleTypeSingle:
			if occ, ok := materializeSingle(group, windowStart, windowEnd, opts); ok {
				occurrences = append(occurrences, occ)
			}
		}
	}

	return occurrences
}

func materializeRecurring(group *model.ClassGroup, windowStart, windowEnd time.Time) []model.GroupOccurrence {
	var occurrences []model.GroupOccurrence

	for _, day := range timeutil.DaysBetween(windowStart, windowEnd) {
		interval, ok := group.Schedule.Days[timeutil.WeekdayIndex(day)]
		if !ok {
			continue
		}

		start, err := timeutil.MinutesOfDay(interval.Start)
		if err != nil {
			continue
		}
		end, err := timeutil.MinutesOfDay(interval.End)
		if err != nil {
			continue
		}

		// Empty and inverted intervals produce nothing.
		duration := end - start
		if duration <= 0 {
			continue
		}

		occurrences = append(occurrences, model.GroupOccurrence{
			ID:              model.GroupOccurrenceID(group.ID, day),
			GroupID:         group.ID,
			Date:            day,
			Time:            interval.Start,
			DurationMinutes: duration,
			TeacherID:       group.TeacherID,
		})
	}

	return occurrences
}

func materializeSingle(group *model.ClassGroup, windowStart, windowEnd time.Time, opts MaterializeOpts) (model.GroupOccurrence, bool) {
	date := timeutil.NormalizeDate(group.Schedule.Date)

	if !opts.IncludeOutOfWindowSingles {
		if date.Before(timeutil.NormalizeDate(windowStart)) || date.After(timeutil.NormalizeDate(windowEnd)) {
			return model.GroupOccurrence{}, false
		}
	}

	if _, err := timeutil.MinutesOfDay(group.Schedule.Time); err != nil {
		return model.GroupOccurrence{}, false
	}

	return model.GroupOccurrence{
		ID:              model.GroupOccurrenceID(group.ID, date),
		GroupID:         group.ID,
		Date:            date,
		Time:            group.Schedule.Time,
		DurationMinutes: group.SingleDuration(),
		TeacherID:       group.TeacherID,
	}, true
}
