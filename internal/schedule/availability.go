package schedule

import (
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
)

// IsWithinAvailability reports whether the candidate (date, time) matches
// one of the teacher's declared start slots for that weekday. Declared
// availability is a set of discrete start times, not open intervals: the
// candidate must equal a slot exactly at minute granularity.
//
// The result is advisory. Booking outside declared availability is a
// legitimate business case, so callers surface a warning, never an error.
func IsWithinAvailability(teacher *model.Teacher, date time.Time, hhmm string) bool {
	if teacher == nil {
		return false
	}

	slots, ok := teacher.Availability[timeutil.WeekdayIndex(date)]
	if !ok || len(slots) == 0 {
		return false
	}

	candidate, err := timeutil.MinutesOfDay(hhmm)
	if err != nil {
		return false
	}

	for _, slot := range slots {
		declared, err := timeutil.MinutesOfDay(slot)
		if err != nil {
			continue
		}
		if declared == candidate {
			return true
		}
	}
	return false
}
