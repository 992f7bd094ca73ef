package schedule

import (
	"testing"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIsWithinAvailability(t *testing.T) {
	teacher := &model.Teacher{
		ID: "teacher-1",
		Availability: map[int][]string{
			2: {"09:00", "10:30"}, // Tuesdays
		},
	}
	tuesday := day(2024, 1, 9)
	wednesday := day(2024, 1, 10)

	tests := []struct {
		name string
		date string
		time string
		want bool
	}{
		{name: "declared slot matches", date: "tuesday", time: "09:00", want: true},
		{name: "second declared slot matches", date: "tuesday", time: "10:30", want: true},
		{name: "between slots does not match", date: "tuesday", time: "09:15", want: false},
		{name: "no slots for weekday", date: "wednesday", time: "09:00", want: false},
		{name: "malformed candidate", date: "tuesday", time: "9am", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := tuesday
			if tt.date == "wednesday" {
				date = wednesday
			}
			assert.Equal(t, tt.want, IsWithinAvailability(teacher, date, tt.time))
		})
	}
}

func TestIsWithinAvailabilityNilTeacher(t *testing.T) {
	assert.False(t, IsWithinAvailability(nil, day(2024, 1, 9), "09:00"))
}

func TestIsWithinAvailabilitySkipsMalformedDeclaredSlots(t *testing.T) {
	teacher := &model.Teacher{
		Availability: map[int][]string{
			2: {"garbage", "10:30"},
		},
	}
	assert.True(t, IsWithinAvailability(teacher, day(2024, 1, 9), "10:30"))
	assert.False(t, IsWithinAvailability(teacher, day(2024, 1, 9), "09:00"))
}
