package blueprint

import (
	"beacon-api/domain"
)

// Template is one immutable task definition inside a blueprint phase.
// DueInDays is an offset in calendar days from the board's reference date;
// nil means the task carries no deadline.
type Template struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    domain.Category    `json:"category"`
	Severity    domain.Severity    `json:"severity"`
	Owner       string             `json:"owner"`
	Priority    domain.Priority    `json:"priority"`
	Phase       domain.Phase       `json:"phase"`
	Pillar      domain.Pillar      `json:"pillar"`
	DueInDays   *int               `json:"dueInDays,omitempty"`
	Status      domain.Status      `json:"status,omitempty"`
	References  []domain.Reference `json:"references,omitempty"`
	Evidences   []domain.Evidence  `json:"evidences,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
}

// PhaseGroup is an ordered group of templates belonging to one rollout phase.
type PhaseGroup struct {
	ID        string       `json:"id"`
	Phase     domain.Phase `json:"phase"`
	Title     string       `json:"title"`
	Summary   string       `json:"summary"`
	Milestone string       `json:"milestone"`
	Focus     []string     `json:"focus"`
	Tasks     []Template   `json:"tasks"`
}

// Blueprint is one versioned catalog of phases. Template ids are unique
// within a version; versions may reuse ids.
type Blueprint struct {
	Version string       `json:"version"`
	Name    string       `json:"name"`
	Phases  []PhaseGroup `json:"phases"`
}

// Registry indexes exactly one blueprint version by template id. Binding a
// registry to a single version is what keeps same-id templates from
// different versions from colliding in one process.
type Registry struct {
	bp   Blueprint
	byID map[string]*Template
}

// NewRegistry builds the id index for the given blueprint.
func NewRegistry(bp Blueprint) *Registry {
	r := &Registry{bp: bp}
	r.Reindex()
	return r
}

// Reindex rebuilds the id index. Re-inserting the same id with the same
// template is a no-op, so calling it repeatedly is safe.
func (r *Registry) Reindex() {
	idx := make(map[string]*Template)
	for pi := range r.bp.Phases {
		phase := &r.bp.Phases[pi]
		for ti := range phase.Tasks {
			idx[phase.Tasks[ti].ID] = &phase.Tasks[ti]
		}
	}
	r.byID = idx
}

// Task looks up a template by id. Absent ids report false, never panic.
func (r *Registry) Task(id string) (Template, bool) {
	t, ok := r.byID[id]
	if !ok {
		return Template{}, false
	}
	return *t, true
}

// Blueprint returns the catalog this registry indexes.
func (r *Registry) Blueprint() Blueprint { return r.bp }

// Version returns the indexed catalog version.
func (r *Registry) Version() string { return r.bp.Version }
