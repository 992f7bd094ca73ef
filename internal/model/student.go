package model

import "time"

// Student is a read-only identity record supplied by the surrounding
// system.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
