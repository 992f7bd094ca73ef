package model

import "time"

type GroupStatus string

const (
	GroupStatusActive   GroupStatus = "active"
	GroupStatusArchived GroupStatus = "archived"
)

type ScheduleType string

const (
	ScheduleTypeRecurring ScheduleType = "recurring"
	ScheduleTypeSingle    ScheduleType = "single"
)

// DayInterval is one weekday's recurring class interval.
type DayInterval struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// ClassGroupSchedule is a declarative schedule owned by a class group:
// either a weekly recurring pattern (at most one interval per weekday)
// or a single dated session.
type ClassGroupSchedule struct {
	Type ScheduleType        `json:"type"`
	Days map[int]DayInterval `json:"days,omitempty"` // weekday 0=Sunday..6=Saturday
	Date time.Time           `json:"date,omitempty"` // single only
	Time string              `json:"time,omitempty"` // single only, "HH:MM"
}

// DefaultSingleDurationMinutes is used for single-session occurrences when
// the group does not declare its own duration.
const DefaultSingleDurationMinutes = 60

type ClassGroup struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	TeacherID             string             `json:"teacher_id"`
	Discipline            string             `json:"discipline"`
	Status                GroupStatus        `json:"status"`
	Schedule              ClassGroupSchedule `json:"schedule"`
	SingleDurationMinutes int                `json:"single_duration_minutes"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// IsActive reports whether the group still materializes occurrences.
func (g *ClassGroup) IsActive() bool {
	return g.Status == GroupStatusActive
}

// SingleDuration returns the duration for single-session occurrences.
func (g *ClassGroup) SingleDuration() int {
	if g.SingleDurationMinutes > 0 {
		return g.SingleDurationMinutes
	}
	return DefaultSingleDurationMinutes
}
