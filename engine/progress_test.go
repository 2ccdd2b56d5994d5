package engine

import (
	"testing"
	"time"

	"beacon-api/domain"
)

var today = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func task(id string, status domain.Status, severity domain.Severity, dueDate string) domain.Task {
	return domain.Task{ID: id, Title: id, Status: status, Severity: severity, DueDate: dueDate}
}

func board(id string, tasks ...domain.Task) domain.Board {
	return domain.Board{ID: id, Tasks: tasks}
}

func TestProgressForBoard(t *testing.T) {
	tests := []struct {
		name  string
		board domain.Board
		want  int
	}{
		{name: "empty board", board: board("b1"), want: 0},
		{
			name: "one of three done",
			board: board("b1",
				task("t1", domain.StatusDone, domain.SeverityGreen, ""),
				task("t2", domain.StatusTodo, domain.SeverityGreen, ""),
				task("t3", domain.StatusTodo, domain.SeverityGreen, ""),
			),
			want: 33,
		},
		{
			name: "all done",
			board: board("b1",
				task("t1", domain.StatusDone, domain.SeverityGreen, ""),
				task("t2", domain.StatusDone, domain.SeverityGreen, ""),
			),
			want: 100,
		},
		{
			name: "two of three done rounds up",
			board: board("b1",
				task("t1", domain.StatusDone, domain.SeverityGreen, ""),
				task("t2", domain.StatusDone, domain.SeverityGreen, ""),
				task("t3", domain.StatusDoing, domain.SeverityGreen, ""),
			),
			want: 67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressForBoard(tt.board)
			if got != tt.want {
				t.Fatalf("ProgressForBoard = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("progress %d out of bounds", got)
			}
		})
	}
}

func TestProgressForBoardsFlattensUnion(t *testing.T) {
	boards := []domain.Board{
		board("b1", task("t1", domain.StatusDone, domain.SeverityGreen, "")),
		board("b2",
			task("t2", domain.StatusTodo, domain.SeverityGreen, ""),
			task("t3", domain.StatusDone, domain.SeverityGreen, ""),
			task("t4", domain.StatusDoing, domain.SeverityGreen, ""),
		),
	}
	if got := ProgressForBoards(boards); got != 50 {
		t.Fatalf("ProgressForBoards = %d, want 50", got)
	}
	if got := ProgressForBoards(nil); got != 0 {
		t.Fatalf("empty union = %d, want 0", got)
	}
	if got := ProgressForBoards([]domain.Board{board("b1")}); got != 0 {
		t.Fatalf("boards without tasks = %d, want 0", got)
	}
}

func TestAnalyzeBucketsAreMutuallyExclusive(t *testing.T) {
	yesterday := domain.FormatDueDate(today.AddDate(0, 0, -1))
	boards := []domain.Board{board("b1", task("t1", domain.StatusTodo, domain.SeverityGreen, yesterday))}

	m := Analyze(boards, today)
	if m.OverdueTasks != 1 {
		t.Fatalf("overdueTasks = %d, want 1", m.OverdueTasks)
	}
	if m.UpcomingThreeDays != 0 {
		t.Fatalf("upcomingThreeDays = %d, want 0", m.UpcomingThreeDays)
	}
}

func TestAnalyze(t *testing.T) {
	boards := []domain.Board{
		board("b1",
			task("done-overdue", domain.StatusDone, domain.SeverityRed, domain.FormatDueDate(today.AddDate(0, 0, -5))),
			task("critical-open", domain.StatusTodo, domain.SeverityRed, domain.FormatDueDate(today.AddDate(0, 0, 10))),
			task("due-today", domain.StatusDoing, domain.SeverityAmber, domain.FormatDueDate(today)),
			task("due-in-three", domain.StatusTodo, domain.SeverityGreen, domain.FormatDueDate(today.AddDate(0, 0, 3))),
			task("due-in-four", domain.StatusTodo, domain.SeverityGreen, domain.FormatDueDate(today.AddDate(0, 0, 4))),
		),
		board("b2",
			task("no-deadline", domain.StatusTodo, domain.SeverityAmber, ""),
			task("bad-date", domain.StatusTodo, domain.SeverityGreen, "whenever"),
		),
	}

	m := Analyze(boards, today)
	want := Metrics{
		TotalBoards:       2,
		TotalTasks:        7,
		CompletedTasks:    1,
		InProgressTasks:   6,
		OverdueTasks:      0,
		UpcomingThreeDays: 2,
		CriticalOpen:      1,
		AttentionOpen:     2,
	}
	if m != want {
		t.Fatalf("Analyze = %+v, want %+v", m, want)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	if m := Analyze(nil, today); m != (Metrics{}) {
		t.Fatalf("Analyze(nil) = %+v, want zero metrics", m)
	}
}

func TestAnalyzeSanitizesUnknownSeverity(t *testing.T) {
	boards := []domain.Board{board("b1",
		task("t1", domain.StatusTodo, domain.Severity("purple"), ""),
	)}
	m := Analyze(boards, today)
	if m.AttentionOpen != 1 {
		t.Fatalf("attentionOpen = %d, want 1", m.AttentionOpen)
	}
	if m.CriticalOpen != 0 {
		t.Fatalf("criticalOpen = %d, want 0", m.CriticalOpen)
	}
}

func TestAnalyzeIgnoresDoneForRiskCounts(t *testing.T) {
	boards := []domain.Board{board("b1",
		task("t1", domain.StatusDone, domain.SeverityRed, ""),
		task("t2", domain.StatusDone, domain.SeverityAmber, ""),
	)}
	m := Analyze(boards, today)
	if m.CriticalOpen != 0 || m.AttentionOpen != 0 {
		t.Fatalf("completed tasks counted as open risk: %+v", m)
	}
}
