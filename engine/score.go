package engine

import (
	"sort"
	"strings"
	"time"

	"beacon-api/domain"
)

// Score computes a composite urgency score: static severity plus priority,
// boosted when the deadline is near or past. Completed tasks keep half the
// base so they sink in any urgency ranking without disappearing.
func Score(task domain.Task, today time.Time) float64 {
	base := severityWeight(task.Severity) + priorityWeight(task.Priority)
	if task.Done() {
		return base / 2
	}
	due, ok := domain.ParseDueDate(task.DueDate)
	if !ok {
		return base
	}
	switch d := domain.DaysBetween(today, due); {
	case d < 0:
		return base + 2
	case d <= dueSoonWindowDays:
		return base + 1
	}
	return base
}

// SortByPriority returns the tasks ordered by descending score. Ties go to
// the earlier due date, then to the task that has a due date at all, then to
// the title. The input slice is left untouched.
func SortByPriority(tasks []domain.Task, today time.Time) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := Score(sorted[i], today), Score(sorted[j], today)
		if si != sj {
			return si > sj
		}
		di, iok := domain.ParseDueDate(sorted[i].DueDate)
		dj, jok := domain.ParseDueDate(sorted[j].DueDate)
		switch {
		case iok && jok:
			if !di.Equal(dj) {
				return di.Before(dj)
			}
		case iok:
			return true
		case jok:
			return false
		}
		return strings.Compare(strings.ToLower(sorted[i].Title), strings.ToLower(sorted[j].Title)) < 0
	})
	return sorted
}

func severityWeight(s domain.Severity) float64 {
	switch domain.SanitizeSeverity(string(s)) {
	case domain.SeverityGreen:
		return 1
	case domain.SeverityRed:
		return 3
	default:
		return 2
	}
}

func priorityWeight(p domain.Priority) float64 {
	switch domain.SanitizePriority(string(p)) {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityLow:
		return 1
	default:
		return 2
	}
}
