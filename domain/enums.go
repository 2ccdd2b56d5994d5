package domain

// Status tracks a task through its lifecycle. Movement between values is
// unrestricted; a reopened task simply goes back to todo or doing.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Severity is the static risk classification of a task. Derived views may
// escalate it near or past the due date without touching the stored value.
type Severity string

const (
	SeverityGreen Severity = "green"
	SeverityAmber Severity = "amber"
	SeverityRed   Severity = "red"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryPlanning   Category = "planning"
	CategoryOperations Category = "operations"
	CategoryCompliance Category = "compliance"
)

// Phase is the rollout stage a task belongs to.
type Phase string

const (
	PhaseFundamentals   Phase = "fundamentals"
	PhasePlanning       Phase = "planning"
	PhaseImplementation Phase = "implementation"
	PhaseMonitoring     Phase = "monitoring"
)

// Pillar is the governance area a task belongs to.
type Pillar string

const (
	PillarFiscal      Pillar = "fiscal"
	PillarContabil    Pillar = "contabil"
	PillarTrabalhista Pillar = "trabalhista"
	PillarSocietario  Pillar = "societario"
	PillarGovernanca  Pillar = "governanca"
)

// SanitizeStatus maps unknown values to todo so rows written by older
// clients never break derivations.
func SanitizeStatus(v string) Status {
	switch Status(v) {
	case StatusTodo, StatusDoing, StatusDone:
		return Status(v)
	}
	return StatusTodo
}

func SanitizeSeverity(v string) Severity {
	switch Severity(v) {
	case SeverityGreen, SeverityAmber, SeverityRed:
		return Severity(v)
	}
	return SeverityAmber
}

func SanitizePriority(v string) Priority {
	switch Priority(v) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(v)
	}
	return PriorityMedium
}

func SanitizeCategory(v string) Category {
	switch Category(v) {
	case CategoryPlanning, CategoryOperations, CategoryCompliance:
		return Category(v)
	}
	return CategoryOperations
}

// SanitizePhase keeps unknown phases empty rather than guessing a stage.
func SanitizePhase(v string) Phase {
	switch Phase(v) {
	case PhaseFundamentals, PhasePlanning, PhaseImplementation, PhaseMonitoring:
		return Phase(v)
	}
	return ""
}

func SanitizePillar(v string) Pillar {
	switch Pillar(v) {
	case PillarFiscal, PillarContabil, PillarTrabalhista, PillarSocietario, PillarGovernanca:
		return Pillar(v)
	}
	return ""
}
