package engine

import (
	"time"

	"beacon-api/domain"
)

// Brazilian day-first date label used in notification messages.
const dueLabelLayout = "02/01/2006"

// ResolveSeverity returns the effective severity of a task for display and
// alerting: done tasks are always green, overdue tasks are always red, tasks
// due within three days are at least amber, and everything else keeps its
// static severity.
func ResolveSeverity(task domain.Task, today time.Time) domain.Severity {
	if task.Done() {
		return domain.SeverityGreen
	}
	due, ok := domain.ParseDueDate(task.DueDate)
	if !ok {
		return domain.SanitizeSeverity(string(task.Severity))
	}
	switch d := domain.DaysBetween(today, due); {
	case d < 0:
		return domain.SeverityRed
	case d <= dueSoonWindowDays:
		return domain.SeverityAmber
	}
	return domain.SanitizeSeverity(string(task.Severity))
}

// BuildNotifications derives the notification set for all open tasks across
// the given boards. Done tasks produce nothing. Read flags are carried over
// from previous by id, so rebuilding from the same boards is a no-op on
// state rather than an accumulation.
func BuildNotifications(boards []domain.Board, previous []domain.Notification, today time.Time) []domain.Notification {
	read := readStates(previous)

	out := make([]domain.Notification, 0)
	for _, board := range boards {
		for _, task := range board.Tasks {
			if task.Done() {
				continue
			}
			id := domain.NotificationID(board.ID, task.ID)
			out = append(out, domain.Notification{
				ID:        id,
				BoardID:   board.ID,
				TaskID:    task.ID,
				Severity:  ResolveSeverity(task, today),
				Title:     task.Title,
				Message:   notificationMessage(task, today),
				DueDate:   task.DueDate,
				CreatedAt: task.CreatedAt,
				Read:      read[id],
				Phase:     task.Phase,
				Priority:  task.Priority,
				Pillar:    task.Pillar,
			})
		}
	}
	return out
}

// MergeNotifications overlays read state from current onto a freshly derived
// set, by id. Ids absent from current keep their incoming value. It applies
// the same rule BuildNotifications applies internally, for call sites that
// already hold a derived list.
func MergeNotifications(current, updated []domain.Notification) []domain.Notification {
	known := make(map[string]bool, len(current))
	for _, n := range current {
		known[n.ID] = n.Read
	}
	out := make([]domain.Notification, len(updated))
	for i, n := range updated {
		if read, ok := known[n.ID]; ok {
			n.Read = read
		}
		out[i] = n
	}
	return out
}

func notificationMessage(task domain.Task, today time.Time) string {
	due, ok := domain.ParseDueDate(task.DueDate)
	if !ok {
		return "No deadline set"
	}
	if domain.DaysBetween(today, due) < 0 {
		return "Overdue since " + due.Format(dueLabelLayout)
	}
	return "Due " + due.Format(dueLabelLayout)
}

func readStates(notifications []domain.Notification) map[string]bool {
	read := make(map[string]bool, len(notifications))
	for _, n := range notifications {
		read[n.ID] = n.Read
	}
	return read
}
