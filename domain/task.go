package domain

// Reference points at supporting material for a task (legislation, internal
// policy, how-to).
type Reference struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Evidence is an artifact proving a task was carried out.
type Evidence struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Task represents a single board item. DueDate is date-only (yyyy-MM-dd) and
// empty when the task has no deadline; CreatedAt/UpdatedAt are RFC 3339
// timestamps.
type Task struct {
	ID          string      `json:"id"`
	BoardID     string      `json:"boardId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Severity    Severity    `json:"severity"`
	Status      Status      `json:"status"`
	Owner       string      `json:"owner,omitempty"`
	Category    Category    `json:"category"`
	DueDate     string      `json:"dueDate,omitempty"`
	Phase       Phase       `json:"phase,omitempty"`
	Pillar      Pillar      `json:"pillar,omitempty"`
	Priority    Priority    `json:"priority,omitempty"`
	References  []Reference `json:"references"`
	Evidences   []Evidence  `json:"evidences"`
	Notes       []string    `json:"notes"`
	Tags        []string    `json:"tags"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

// Done reports whether the task is completed.
func (t Task) Done() bool { return t.Status == StatusDone }

// Sanitize normalizes enum fields and replaces nil collections with empty
// ones, regardless of whether the record came from storage, a migration or
// user input.
func (t *Task) Sanitize() {
	t.Status = SanitizeStatus(string(t.Status))
	t.Severity = SanitizeSeverity(string(t.Severity))
	t.Category = SanitizeCategory(string(t.Category))
	t.Phase = SanitizePhase(string(t.Phase))
	t.Pillar = SanitizePillar(string(t.Pillar))
	if t.Priority != "" {
		t.Priority = SanitizePriority(string(t.Priority))
	}
	if _, ok := ParseDueDate(t.DueDate); !ok {
		t.DueDate = ""
	}
	if t.References == nil {
		t.References = []Reference{}
	}
	if t.Evidences == nil {
		t.Evidences = []Evidence{}
	}
	if t.Notes == nil {
		t.Notes = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// Board is a named collection of tasks scoped to one company. Task order is
// insertion order and carries no meaning for derivations.
type Board struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Tasks       []Task `json:"tasks"`
}
