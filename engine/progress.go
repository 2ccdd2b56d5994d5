package engine

import (
	"math"
	"time"

	"beacon-api/domain"
)

// Metrics is a single-pass summary of every board belonging to one company.
type Metrics struct {
	TotalBoards       int `json:"totalBoards"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	InProgressTasks   int `json:"inProgressTasks"`
	OverdueTasks      int `json:"overdueTasks"`
	UpcomingThreeDays int `json:"upcomingThreeDays"`
	CriticalOpen      int `json:"criticalOpen"`
	AttentionOpen     int `json:"attentionOpen"`
}

// ProgressForBoard returns the board's completion percentage, rounded to the
// nearest integer. An empty board is 0, not a division error.
func ProgressForBoard(board domain.Board) int {
	return progress(countDone(board.Tasks), len(board.Tasks))
}

// ProgressForBoards computes completion over the union of all tasks across
// the given boards.
func ProgressForBoards(boards []domain.Board) int {
	done, total := 0, 0
	for _, board := range boards {
		done += countDone(board.Tasks)
		total += len(board.Tasks)
	}
	return progress(done, total)
}

// Analyze reduces boards into operational metrics. All due-date comparisons
// use calendar-day granularity against the supplied today; overdue and
// due-within-three-days are mutually exclusive buckets.
func Analyze(boards []domain.Board, today time.Time) Metrics {
	m := Metrics{TotalBoards: len(boards)}
	for _, board := range boards {
		for _, task := range board.Tasks {
			m.TotalTasks++
			if task.Done() {
				m.CompletedTasks++
				continue
			}
			switch domain.SanitizeSeverity(string(task.Severity)) {
			case domain.SeverityRed:
				m.CriticalOpen++
			case domain.SeverityAmber:
				m.AttentionOpen++
			}
			due, ok := domain.ParseDueDate(task.DueDate)
			if !ok {
				continue
			}
			switch d := domain.DaysBetween(today, due); {
			case d < 0:
				m.OverdueTasks++
			case d <= dueSoonWindowDays:
				m.UpcomingThreeDays++
			}
		}
	}
	m.InProgressTasks = m.TotalTasks - m.CompletedTasks
	return m
}

// Tasks due within this many calendar days count as upcoming.
const dueSoonWindowDays = 3

func countDone(tasks []domain.Task) int {
	done := 0
	for _, task := range tasks {
		if task.Done() {
			done++
		}
	}
	return done
}

func progress(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
