package schedule

import (
	"time"

	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/model"
	"github.com/Oficinadoaluno/Sistema-Oficina-do-Aluno-sub001/internal/timeutil"
)

// Default display window when a day has no occurrences.
const (
	defaultViewStartHour = 8
	defaultViewEndHour   = 21
)

type EntryKind string

const (
	EntryKindIndividual EntryKind = "individual"
	EntryKindGroup      EntryKind = "group"
)

// Entry is one timeline item: an individual occurrence or a materialized
// group occurrence, reduced to what the layout needs.
type Entry struct {
	ID              string
	Kind            EntryKind
	Label           string
	Time            string // "HH:MM"
	DurationMinutes int
	PaymentStatus   model.PaymentStatus // individual entries only
	Canceled        bool
}

// HourWindow is a [StartHour, EndHour) display range.
type HourWindow struct {
	StartHour int
	EndHour   int
}

// PlacedBlock is an entry projected onto the day's timeline. Offset and
// height are both expressed in minutes from the effective window start, so
// any linear pixel scale applies uniformly.
type PlacedBlock struct {
	Entry
	OffsetMinutes       int
	HeightMinutes       int
	OutsideAvailability bool
}

// DayLayout is the projected timeline of one teacher's day.
type DayLayout struct {
	Day    time.Time
	Window HourWindow
	Blocks []PlacedBlock
}

// Layout projects a day's entries onto a vertical timeline.
//
// The hour window auto-expands to contain every occurrence of the day.
// Overlapping blocks are left overlapping on purpose: a double booking is
// a conflict the operator must see and resolve, not something to hide.
// Entries with malformed times fall back to minute 0 rather than failing;
// this is a read-only rendering path.
func Layout(entries []Entry, teacher *model.Teacher, day time.Time, view HourWindow) DayLayout {
	if view.StartHour == 0 && view.EndHour == 0 {
		view = HourWindow{StartHour: defaultViewStartHour, EndHour: defaultViewEndHour}
	}

	window := effectiveWindow(entries, view)
	day = timeutil.NormalizeDate(day)

	var blocks []PlacedBlock
	for _, entry := range entries {
		if entry.DurationMinutes <= 0 {
			continue
		}

		start := timeutil.MinutesOfDayOrZero(entry.Time)
		end := start + entry.DurationMinutes

		// Clip entries that lie entirely outside the window.
		if end <= window.StartHour*60 || start >= window.EndHour*60 {
			continue
		}

		blocks = append(blocks, PlacedBlock{
			Entry:               entry,
			OffsetMinutes:       start - window.StartHour*60,
			HeightMinutes:       entry.DurationMinutes,
			OutsideAvailability: teacher != nil && !IsWithinAvailability(teacher, day, entry.Time),
		})
	}

	return DayLayout{Day: day, Window: window, Blocks: blocks}
}

func effectiveWindow(entries []Entry, view HourWindow) HourWindow {
	window := view

	for _, entry := range entries {
		if entry.DurationMinutes <= 0 {
			continue
		}

		start := timeutil.MinutesOfDayOrZero(entry.Time)
		end := start + entry.DurationMinutes

		startHour := start / 60
		endHour := end / 60
		if end%60 != 0 {
			endHour++
		}

		if startHour < window.StartHour {
			window.StartHour = startHour
		}
		if endHour > window.EndHour {
			window.EndHour = endHour
		}
	}

	if window.EndHour > 24 {
		window.EndHour = 24
	}
	return window
}
