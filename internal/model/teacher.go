package model

import "time"

// Teacher is a read-only identity record supplied by the surrounding
// system. The engine never mutates teachers.
type Teacher struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	HourlyRate float64   `json:"hourly_rate"` // 0 = use the configured default rate
	// Availability maps weekday (0=Sunday..6=Saturday) to the declared
	// class start times ("HH:MM") the teacher offers on that day.
	Availability map[int][]string `json:"availability"`
	CreatedAt    time.Time        `json:"created_at"`
}
