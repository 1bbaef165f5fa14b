package domain

type WorkItemType string

const (
	TypeFeature        WorkItemType = "feature"
	TypeEnhancement    WorkItemType = "enhancement"
	TypeBugfix         WorkItemType = "bugfix"
	TypeResearch       WorkItemType = "research"
	TypePlanning       WorkItemType = "planning"
	TypeRefactoring    WorkItemType = "refactoring"
	TypeInfrastructure WorkItemType = "infrastructure"
)

// ValidWorkItemTypes is the canonical set of accepted work item type strings.
var ValidWorkItemTypes = map[string]bool{
	"feature": true, "enhancement": true, "bugfix": true,
	"research": true, "planning": true, "refactoring": true,
	"infrastructure": true,
}

type Phase string

const (
	PhaseNone           Phase = "none"
	PhaseDiscovery      Phase = "discovery"
	PhasePlan           Phase = "plan"
	PhaseImplementation Phase = "implementation"
	PhaseReview         Phase = "review"
	PhaseOperations     Phase = "operations"
	PhaseEvolution      Phase = "evolution"
)

type WorkItemStatus string

const (
	StatusDraft     WorkItemStatus = "draft"
	StatusReady     WorkItemStatus = "ready"
	StatusActive    WorkItemStatus = "active"
	StatusInReview  WorkItemStatus = "in_review"
	StatusDone      WorkItemStatus = "done"
	StatusArchived  WorkItemStatus = "archived"
	StatusBlocked   WorkItemStatus = "blocked"
	StatusCancelled WorkItemStatus = "cancelled"
)

// phaseStatus is the fixed phase→status table. Exceptional statuses
// (blocked, cancelled, archived) are set out of band and never appear here.
var phaseStatus = map[Phase]WorkItemStatus{
	PhaseNone:           StatusDraft,
	PhaseDiscovery:      StatusReady,
	PhasePlan:           StatusReady,
	PhaseImplementation: StatusActive,
	PhaseReview:         StatusInReview,
	PhaseOperations:     StatusActive,
	PhaseEvolution:      StatusDone,
}

// StatusForPhase returns the status a work item carries while in the given
// phase under normal (non-exceptional) progression.
func StatusForPhase(p Phase) WorkItemStatus {
	if s, ok := phaseStatus[p]; ok {
		return s
	}
	return StatusDraft
}

// IsExceptionalStatus reports whether the status suspends phase-driven
// progression.
func IsExceptionalStatus(s WorkItemStatus) bool {
	return s == StatusBlocked || s == StatusCancelled || s == StatusArchived
}

type TaskType string

const (
	TaskDesign         TaskType = "design"
	TaskImplementation TaskType = "implementation"
	TaskTesting        TaskType = "testing"
	TaskDocumentation  TaskType = "documentation"
	TaskResearch       TaskType = "research"
	TaskInfra          TaskType = "infra"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type ConfidenceBand string

const (
	BandRed    ConfidenceBand = "red"
	BandYellow ConfidenceBand = "yellow"
	BandGreen  ConfidenceBand = "green"
)
