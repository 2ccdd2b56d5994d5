// Package calendar provides pure date-bucketing helpers used to project
// tasks onto day, week and month views. Nothing here reads the clock; the
// caller passes today in once per render.
package calendar

import (
	"sort"
	"time"

	"beacon-api/domain"
)

// DayCell is one cell of a month grid.
type DayCell struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"inMonth"`
	Today   bool      `json:"today"`
}

// Item is a dated or time-ranged entry to place on the calendar. All-day
// items span midnight to midnight of the following day.
type Item struct {
	ID    string    `json:"id"`
	Label string    `json:"label,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FromTasks projects dated tasks to all-day items keyed by due date. Tasks
// without a parseable due date produce nothing.
func FromTasks(tasks []domain.Task) []Item {
	items := make([]Item, 0, len(tasks))
	for _, task := range tasks {
		due, ok := domain.ParseDueDate(task.DueDate)
		if !ok {
			continue
		}
		items = append(items, Item{
			ID:    domain.NotificationID(task.BoardID, task.ID),
			Label: task.Title,
			Start: due,
			End:   due.AddDate(0, 0, 1),
		})
	}
	return items
}

// MonthGrid returns the contiguous day cells covering the month of
// reference, padded with leading and trailing days from adjacent months so
// every row is a complete week starting on weekStart.
func MonthGrid(reference, today time.Time, weekStart time.Weekday) []DayCell {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	last := first.AddDate(0, 1, -1)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	cursor := first.AddDate(0, 0, -lead)
	trail := (6 - ((int(last.Weekday()) - int(weekStart) + 7) % 7)) % 7
	end := last.AddDate(0, 0, trail)

	cells := make([]DayCell, 0, 42)
	for !cursor.After(end) {
		cells = append(cells, DayCell{
			Date:    cursor,
			InMonth: cursor.Month() == reference.Month(),
			Today:   domain.SameDay(cursor, today),
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cells
}

// ItemsForDay returns the items whose range touches the given calendar day.
// Multi-day items match every day of their span, inclusive.
func ItemsForDay(day time.Time, items []Item) []Item {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	out := make([]Item, 0)
	for _, item := range items {
		if item.Start.Before(dayEnd) && item.End.After(dayStart) {
			out = append(out, item)
		}
	}
	return out
}

// AssignTracks partitions time-ranged items into non-overlapping tracks so
// overlapping same-day items can render side by side. Items are placed in
// start order; each goes to the first track it does not collide with.
func AssignTracks(items []Item) [][]Item {
	ordered := make([]Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	tracks := make([][]Item, 0)
place:
	for _, item := range ordered {
		for ti, track := range tracks {
			if !overlapsAny(item, track) {
				tracks[ti] = append(track, item)
				continue place
			}
		}
		tracks = append(tracks, []Item{item})
	}
	return tracks
}

// VisibleHours widens the default [startHour, endHour) window until every
// item's start and end fall inside it, clamped to [0, 24].
func VisibleHours(startHour, endHour int, items []Item) (int, int) {
	for _, item := range items {
		if h := item.Start.Hour(); h < startHour {
			startHour = h
		}
		h := item.End.Hour()
		switch {
		case item.End.Minute() > 0 || item.End.Second() > 0:
			h++
		case h == 0 && item.End.After(item.Start):
			// A midnight end means the span runs to the end of the previous
			// day, hour 24, not hour 0.
			h = 24
		}
		if h > endHour {
			endHour = h
		}
	}
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 {
		endHour = 24
	}
	if endHour < startHour {
		endHour = startHour
	}
	return startHour, endHour
}

func overlapsAny(item Item, track []Item) bool {
	for _, other := range track {
		if item.Start.Before(other.End) && other.Start.Before(item.End) {
			return true
		}
	}
	return false
}
