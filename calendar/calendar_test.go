package calendar

import (
	"testing"
	"time"

	"beacon-api/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestMonthGridCoversWholeWeeks(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday.
	cells := MonthGrid(date(2026, time.March, 15), date(2026, time.March, 10), time.Sunday)

	if len(cells)%7 != 0 {
		t.Fatalf("grid length %d is not whole weeks", len(cells))
	}
	if !cells[0].Date.Equal(date(2026, time.March, 1)) {
		t.Fatalf("grid starts at %v", cells[0].Date)
	}
	if !cells[len(cells)-1].Date.Equal(date(2026, time.April, 4)) {
		t.Fatalf("grid ends at %v", cells[len(cells)-1].Date)
	}

	for i := 1; i < len(cells); i++ {
		if domain.DaysBetween(cells[i-1].Date, cells[i].Date) != 1 {
			t.Fatalf("grid not contiguous at index %d", i)
		}
	}
}

func TestMonthGridLeadingDaysWithMondayStart(t *testing.T) {
	// May 2026 starts on a Friday; a Monday-start grid needs four leading days.
	cells := MonthGrid(date(2026, time.May, 1), date(2026, time.May, 1), time.Monday)

	if !cells[0].Date.Equal(date(2026, time.April, 27)) {
		t.Fatalf("grid starts at %v", cells[0].Date)
	}
	for i := 0; i < 4; i++ {
		if cells[i].InMonth {
			t.Fatalf("leading cell %d marked in-month", i)
		}
	}
	if !cells[4].InMonth {
		t.Fatal("first of month not marked in-month")
	}
}

func TestMonthGridMarksToday(t *testing.T) {
	today := date(2026, time.March, 10)
	cells := MonthGrid(date(2026, time.March, 1), today, time.Sunday)

	marked := 0
	for _, cell := range cells {
		if cell.Today {
			marked++
			if !cell.Date.Equal(today) {
				t.Fatalf("wrong cell marked today: %v", cell.Date)
			}
		}
	}
	if marked != 1 {
		t.Fatalf("expected exactly one today cell, got %d", marked)
	}
}

func TestItemsForDay(t *testing.T) {
	single := Item{ID: "single", Start: date(2026, time.March, 10), End: date(2026, time.March, 11)}
	multi := Item{ID: "multi", Start: date(2026, time.March, 9), End: date(2026, time.March, 12)}
	other := Item{ID: "other", Start: date(2026, time.March, 20), End: date(2026, time.March, 21)}
	items := []Item{single, multi, other}

	got := ItemsForDay(date(2026, time.March, 10), items)
	if len(got) != 2 || got[0].ID != "single" || got[1].ID != "multi" {
		t.Fatalf("unexpected items: %+v", got)
	}

	// Inclusive across the multi-day span.
	got = ItemsForDay(date(2026, time.March, 11), items)
	if len(got) != 1 || got[0].ID != "multi" {
		t.Fatalf("unexpected items on span day: %+v", got)
	}

	if got = ItemsForDay(date(2026, time.March, 13), items); len(got) != 0 {
		t.Fatalf("expected no items, got %+v", got)
	}
}

func TestAssignTracksGreedyFirstFit(t *testing.T) {
	a := Item{ID: "a", Start: at(2026, time.March, 10, 9, 0), End: at(2026, time.March, 10, 11, 0)}
	b := Item{ID: "b", Start: at(2026, time.March, 10, 10, 0), End: at(2026, time.March, 10, 12, 0)}
	c := Item{ID: "c", Start: at(2026, time.March, 10, 11, 0), End: at(2026, time.March, 10, 13, 0)}
	d := Item{ID: "d", Start: at(2026, time.March, 10, 12, 30), End: at(2026, time.March, 10, 14, 0)}

	tracks := AssignTracks([]Item{d, b, a, c})

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	// a and c share a track (back to back); b and d fill the second.
	if tracks[0][0].ID != "a" || tracks[0][1].ID != "c" {
		t.Fatalf("unexpected first track: %+v", tracks[0])
	}
	if tracks[1][0].ID != "b" || tracks[1][1].ID != "d" {
		t.Fatalf("unexpected second track: %+v", tracks[1])
	}
}

func TestAssignTracksDisjointItemsShareOneTrack(t *testing.T) {
	items := []Item{
		{ID: "m", Start: at(2026, time.March, 10, 8, 0), End: at(2026, time.March, 10, 9, 0)},
		{ID: "n", Start: at(2026, time.March, 10, 9, 0), End: at(2026, time.March, 10, 10, 0)},
	}
	if tracks := AssignTracks(items); len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
}

func TestVisibleHours(t *testing.T) {
	tests := []struct {
		name      string
		items     []Item
		wantStart int
		wantEnd   int
	}{
		{name: "no items keeps default", wantStart: 8, wantEnd: 18},
		{
			name:      "early item widens start",
			items:     []Item{{Start: at(2026, time.March, 10, 6, 30), End: at(2026, time.March, 10, 7, 0)}},
			wantStart: 6, wantEnd: 18,
		},
		{
			name:      "late item with minutes rounds the end up",
			items:     []Item{{Start: at(2026, time.March, 10, 19, 0), End: at(2026, time.March, 10, 21, 30)}},
			wantStart: 8, wantEnd: 22,
		},
		{
			name:      "clamped to 24",
			items:     []Item{{Start: at(2026, time.March, 10, 23, 0), End: at(2026, time.March, 10, 23, 45)}},
			wantStart: 8, wantEnd: 24,
		},
		{
			name:      "midnight end covers the last hour",
			items:     []Item{{Start: at(2026, time.March, 10, 23, 0), End: at(2026, time.March, 11, 0, 0)}},
			wantStart: 8, wantEnd: 24,
		},
		{
			name:      "all-day item spans the full day",
			items:     []Item{{Start: at(2026, time.March, 10, 0, 0), End: at(2026, time.March, 11, 0, 0)}},
			wantStart: 0, wantEnd: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleHours(8, 18, tt.items)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("VisibleHours = %d..%d, want %d..%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFromTasksSkipsUndatedTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", BoardID: "b1", Title: "Dated", DueDate: "2026-03-10"},
		{ID: "t2", BoardID: "b1", Title: "Undated"},
		{ID: "t3", BoardID: "b1", Title: "Broken", DueDate: "10/03/2026"},
	}

	items := FromTasks(tasks)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "b1-t1" {
		t.Fatalf("unexpected id: %s", items[0].ID)
	}
	if domain.DaysBetween(items[0].Start, items[0].End) != 1 {
		t.Fatal("all-day item must span exactly one day")
	}
}
