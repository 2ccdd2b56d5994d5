package blueprint

import (
	"time"

	"beacon-api/domain"
)

// Instantiate expands a blueprint into concrete tasks for one board. Due
// dates are referenceDate + dueInDays calendar days; templates without an
// offset produce tasks without a deadline. Every task in the batch shares
// the supplied timestamp for createdAt and updatedAt.
//
// The result never aliases blueprint memory: references, evidences and tags
// are copied so mutating an instance cannot corrupt the catalog.
func Instantiate(bp Blueprint, boardID string, referenceDate, timestamp time.Time) []domain.Task {
	stamp := timestamp.UTC().Format(time.RFC3339)
	tasks := make([]domain.Task, 0, templateCount(bp))
	for _, phase := range bp.Phases {
		for _, tpl := range phase.Tasks {
			status := tpl.Status
			if status == "" {
				status = domain.StatusTodo
			}
			task := domain.Task{
				ID:          tpl.ID,
				BoardID:     boardID,
				Title:       tpl.Title,
				Description: tpl.Description,
				Severity:    tpl.Severity,
				Status:      status,
				Owner:       tpl.Owner,
				Category:    tpl.Category,
				Phase:       tpl.Phase,
				Pillar:      tpl.Pillar,
				Priority:    tpl.Priority,
				References:  copyReferences(tpl.References),
				Evidences:   copyEvidences(tpl.Evidences),
				Notes:       []string{},
				Tags:        copyStrings(tpl.Tags),
				CreatedAt:   stamp,
				UpdatedAt:   stamp,
			}
			if tpl.DueInDays != nil {
				task.DueDate = domain.FormatDueDate(referenceDate.AddDate(0, 0, *tpl.DueInDays))
			}
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// InferDueDate computes the due date a legacy record would have received at
// instantiation time. It reports false when the template has no offset, the
// id is unknown, or the record shows signs of manual edits (updatedAt
// differing from createdAt) — inferring over an edit could resurrect a due
// date the user deliberately cleared.
func InferDueDate(reg *Registry, task domain.Task, referenceDate time.Time) (string, bool) {
	tpl, ok := reg.Task(task.ID)
	if !ok || tpl.DueInDays == nil {
		return "", false
	}
	if task.UpdatedAt != "" && task.UpdatedAt != task.CreatedAt {
		return "", false
	}
	return domain.FormatDueDate(referenceDate.AddDate(0, 0, *tpl.DueInDays)), true
}

func templateCount(bp Blueprint) int {
	n := 0
	for _, phase := range bp.Phases {
		n += len(phase.Tasks)
	}
	return n
}

func copyReferences(in []domain.Reference) []domain.Reference {
	out := make([]domain.Reference, len(in))
	copy(out, in)
	return out
}

func copyEvidences(in []domain.Evidence) []domain.Evidence {
	out := make([]domain.Evidence, len(in))
	copy(out, in)
	return out
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
