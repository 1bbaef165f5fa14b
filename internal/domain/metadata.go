package domain

import "encoding/json"

// AcceptanceCriterion is one testable acceptance statement. Verification
// happens during the review phase, criterion by criterion.
type AcceptanceCriterion struct {
	Text     string `json:"text"`
	Verified bool   `json:"verified,omitempty"`
}

// Risk pairs an identified risk with its mitigation note.
type Risk struct {
	Description string `json:"description"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// Artifact references something produced during a phase (a discovery doc,
// a design sketch, a runbook).
type Artifact struct {
	Name  string `json:"name"`
	Phase Phase  `json:"phase,omitempty"`
	Ref   string `json:"ref,omitempty"`
}

// Task is a unit of planned work attached to a work item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	EstimateMin int        `json:"estimate_min,omitempty"`
}

// Release records operations-phase evidence for the current iteration.
type Release struct {
	Version              string `json:"version,omitempty"`
	Deployed             bool   `json:"deployed,omitempty"`
	HealthCheckPassed    bool   `json:"health_check_passed,omitempty"`
	RollbackPlan         string `json:"rollback_plan,omitempty"`
	MonitoringConfigured bool   `json:"monitoring_configured,omitempty"`
}

// Evolution records post-release learning evidence.
type Evolution struct {
	TelemetryAnalysis string   `json:"telemetry_analysis,omitempty"`
	UserFeedback      []string `json:"user_feedback,omitempty"`
	Improvements      []string `json:"improvements,omitempty"`
}

// Approvals holds recorded review sign-offs.
type Approvals struct {
	CodeReview   bool `json:"code_review,omitempty"`
	SecurityScan bool `json:"security_scan,omitempty"`
}

// Signals holds optional externally-supplied measurements. A nil pointer
// means the signal is unavailable, which is distinct from a zero value:
// gates treat absent optional signals as vacuously satisfied.
type Signals struct {
	ContextConfidence *float64 `json:"context_confidence,omitempty"`
	Coverage          *float64 `json:"coverage,omitempty"`
	TestPassRate      *float64 `json:"test_pass_rate,omitempty"`
}

// Metadata is the gate-relevant evidence attached to a work item. It is
// persisted as a single JSON document.
type Metadata struct {
	BusinessContext    string                `json:"business_context,omitempty"`
	AcceptanceCriteria []AcceptanceCriterion `json:"acceptance_criteria,omitempty"`
	Risks              []Risk                `json:"risks,omitempty"`
	Artifacts          []Artifact            `json:"artifacts,omitempty"`
	Tasks              []Task                `json:"tasks,omitempty"`
	Release            Release               `json:"release"`
	Evolution          Evolution             `json:"evolution"`
	Approvals          Approvals             `json:"approvals"`
	Signals            Signals               `json:"signals"`

	// GateResults caches the most recent validation outcome per phase.
	GateResults map[Phase]GateResult `json:"gate_results,omitempty"`
}

// ParseMetadata decodes a stored metadata document. Callers must treat a
// decode error as a data-quality condition, not a storage failure.
func ParseMetadata(raw []byte) (Metadata, error) {
	var m Metadata
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// EncodeMetadata serializes metadata for storage.
func EncodeMetadata(m Metadata) ([]byte, error) {
	return json.Marshal(m)
}

// TasksOfType returns the tasks matching the given type.
func (m Metadata) TasksOfType(t TaskType) []Task {
	var out []Task
	for _, task := range m.Tasks {
		if task.Type == t {
			out = append(out, task)
		}
	}
	return out
}

// HasTaskType reports whether at least one task of the given type exists.
func (m Metadata) HasTaskType(t TaskType) bool {
	for _, task := range m.Tasks {
		if task.Type == t {
			return true
		}
	}
	return false
}

// HasArtifactForPhase reports whether an artifact tagged with the given
// phase has been recorded.
func (m Metadata) HasArtifactForPhase(p Phase) bool {
	for _, a := range m.Artifacts {
		if a.Phase == p {
			return true
		}
	}
	return false
}
