package schedule

import (
	"testing"
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringGroup(id string, days map[int]model.DayInterval) *model.ClassGroup {
	return &model.ClassGroup{
		ID:        id,
		Name:      "Turma " + id,
		TeacherID: "teacher-1",
		Status:    model.GroupStatusActive,
		Schedule: model.ClassGroupSchedule{
			Type: model.ScheduleTypeRecurring,
			Days: days,
		},
	}
}

func TestMaterializeRecurringMondays(t *testing.T) {
	group := recurringGroup("g1", map[int]model.DayInterval{
		1: {Start: "14:00", End: "15:30"},
	})

	got := Materialize([]*model.ClassGroup{group}, day(2024, 1, 1), day(2024, 1, 31), MaterializeOpts{})

	require.Len(t, got, 5)
	wantDates := []time.Time{
		day(2024, 1, 1), day(2024, 1, 8), day(2024, 1, 15), day(2024, 1, 22), day(2024, 1, 29),
	}
	for i, occ := range got {
		assert.Equal(t, wantDates[i], occ.Date)
		assert.Equal(t, "14:00", occ.Time)
		assert.Equal(t, 90, occ.DurationMinutes)
		assert.Equal(t, "teacher-1", occ.TeacherID)
		assert.Equal(t, "g1", occ.GroupID)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	groups := []*model.ClassGroup{
		recurringGroup("g1", map[int]model.DayInterval{
			1: {Start: "14:00", End: "15:30"},
			3: {Start: "09:00", End: "10:00"},
		}),
		recurringGroup("g2", map[int]model.DayInterval{
			5: {Start: "16:00", End: "17:00"},
		}),
	}

	first := Materialize(groups, day(2024, 1, 1), day(2024, 3, 31), MaterializeOpts{})
	second := Materialize(groups, day(2024, 1, 1), day(2024, 3, 31), MaterializeOpts{})

	require.NotEmpty(t, first)
	assert.ElementsMatch(t, first, second)

	// Ids derive from (group, date): regenerating reproduces them exactly.
	ids := make(map[string]bool)
	for _, occ := range first {
		assert.False(t, ids[occ.ID], "duplicate id %s", occ.ID)
		ids[occ.ID] = true
	}
}

func TestMaterializeSkipsArchivedGroups(t *testing.T) {
	group := recurringGroup("g1", map[int]model.DayInterval{
		1: {Start: "14:00", End: "15:30"},
	})
	group.Status = model.GroupStatusArchived

	got := Materialize([]*model.ClassGroup{group}, day(2024, 1, 1), day(2024, 1, 31), MaterializeOpts{})
	assert.Empty(t, got)
}

func TestMaterializeSkipsDegenerateIntervals(t *testing.T) {
	tests := []struct {
		name     string
		interval model.DayInterval
	}{
		{name: "zero duration", interval: model.DayInterval{Start: "14:00", End: "14:00"}},
		{name: "inverted interval", interval: model.DayInterval{Start: "15:00", End: "14:00"}},
		{name: "malformed start", interval: model.DayInterval{Start: "2pm", End: "15:00"}},
		{name: "malformed end", interval: model.DayInterval{Start: "14:00", End: "late"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := recurringGroup("g1", map[int]model.DayInterval{1: tt.interval})
			got := Materialize([]*model.ClassGroup{group}, day(2024, 1, 1), day(2024, 1, 31), MaterializeOpts{})
			assert.Empty(t, got)
		})
	}
}

func TestMaterializeSingle(t *testing.T) {
	group := &model.ClassGroup{
		ID:        "g1",
		TeacherID: "teacher-1",
		Status:    model.GroupStatusActive,
		Schedule: model.ClassGroupSchedule{
			Type: model.ScheduleTypeSingle,
			Date: day(2024, 2, 10),
			Time: "10:00",
		},
	}

	t.Run("inside window", func(t *testing.T) {
		got := Materialize([]*model.ClassGroup{group}, day(2024, 2, 1), day(2024, 2, 28), MaterializeOpts{})
		require.Len(t, got, 1)
		assert.Equal(t, day(2024, 2, 10), got[0].Date)
		assert.Equal(t, model.DefaultSingleDurationMinutes, got[0].DurationMinutes)
	})

	t.Run("outside window dropped", func(t *testing.T) {
		got := Materialize([]*model.ClassGroup{group}, day(2024, 3, 1), day(2024, 3, 31), MaterializeOpts{})
		assert.Empty(t, got)
	})

	t.Run("outside window kept when advisory", func(t *testing.T) {
		got := Materialize([]*model.ClassGroup{group}, day(2024, 3, 1), day(2024, 3, 31),
			MaterializeOpts{IncludeOutOfWindowSingles: true})
		require.Len(t, got, 1)
		assert.Equal(t, day(2024, 2, 10), got[0].Date)
	})

	t.Run("declared duration wins", func(t *testing.T) {
		withDuration := *group
		withDuration.SingleDurationMinutes = 120
		got := Materialize([]*model.ClassGroup{&withDuration}, day(2024, 2, 1), day(2024, 2, 28), MaterializeOpts{})
		require.Len(t, got, 1)
		assert.Equal(t, 120, got[0].DurationMinutes)
	})
}

func TestDefaultWindow(t *testing.T) {
	clock := timeutil.Fixed(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))

	start, end := DefaultWindow(clock)
	assert.Equal(t, day(2024, 4, 15), start)
	assert.Equal(t, day(2024, 9, 15), end)
}
