package model

import (
	"time"

	"github.com/google/uuid"
)

// groupOccurrenceNamespace is the fixed UUIDv5 namespace for virtual
// occurrence ids. It must never change: regenerating the same window has
// to reproduce byte-identical ids.
var groupOccurrenceNamespace = uuid.MustParse("9f2c1d6e-4b8a-4f3e-9d71-2a5c8e0b6f14")

// GroupOccurrence is a virtual, never persisted occurrence materialized
// from a class group schedule.
type GroupOccurrence struct {
	ID              string    `json:"id"`
	GroupID         string    `json:"group_id"`
	Date            time.Time `json:"date"` // normalized UTC calendar date
	Time            string    `json:"time"` // "HH:MM"
	DurationMinutes int       `json:"duration_minutes"`
	TeacherID       string    `json:"teacher_id"`
}

// GroupOccurrenceID derives the deterministic id for a group's occurrence
// on a given date.
func GroupOccurrenceID(groupID string, date time.Time) string {
	key := groupID + "/" + date.UTC().Format("2006-01-02")
	return uuid.NewSHA1(groupOccurrenceNamespace, []byte(key)).String()
}
