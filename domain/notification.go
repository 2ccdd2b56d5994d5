package domain

// Notification is a derived reminder for one open task. The whole record is
// regenerable from board state except Read, which survives regeneration
// because the id is stable.
type Notification struct {
	ID        string   `json:"id"`
	BoardID   string   `json:"boardId"`
	TaskID    string   `json:"taskId"`
	Severity  Severity `json:"severity"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	DueDate   string   `json:"dueDate,omitempty"`
	CreatedAt string   `json:"createdAt"`
	Read      bool     `json:"read"`
	Phase     Phase    `json:"phase,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	Pillar    Pillar   `json:"pillar,omitempty"`
}

// NotificationID builds the stable composite key for a task's notification.
// Keeping it deterministic is what lets repeated derivations overlay read
// state instead of accumulating duplicates.
func NotificationID(boardID, taskID string) string {
	return boardID + "-" + taskID
}
