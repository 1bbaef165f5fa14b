package gate

import (
	"unicode/utf8"

	"github.com/rfontaine/stagegate/internal/domain"
)

// The confidence score is a fixed weighted sum of sub-factors, each
// normalized to [0,1]. Weights per gate are declared here, once, so the
// validators stay free of scoring arithmetic. Weights within a gate sum
// to 1.0, so the total is always in [0,1].
var (
	discoveryWeights = struct {
		Context, Criteria, Risks, Artifact float64
	}{0.35, 0.30, 0.20, 0.15}

	planWeights = struct {
		Tasks, TaskTypes, Estimates, Timebox float64
	}{0.25, 0.30, 0.25, 0.20}

	implementationWeights = struct {
		Implementation, Testing, Documentation, Coverage float64
	}{0.40, 0.25, 0.20, 0.15}

	reviewWeights = struct {
		Criteria, PassRate, CodeReview, Security float64
	}{0.35, 0.25, 0.20, 0.20}

	operationsWeights = struct {
		Version, Deploy, Health, Rollback float64
	}{0.25, 0.25, 0.25, 0.25}

	evolutionWeights = struct {
		Telemetry, Feedback, Improvements float64
	}{0.40, 0.30, 0.30}
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ratio returns have/want capped at 1, and 0 when want is 0.
func ratio(have, want int) float64 {
	if want <= 0 {
		return 0
	}
	return clamp01(float64(have) / float64(want))
}

// doneFraction scores how many of the given tasks are completed. A task
// list that is empty scores 0: absence of work is not completed work.
func doneFraction(tasks []domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks))
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func scoreDiscovery(m domain.Metadata, opts Options) float64 {
	var total float64
	total += discoveryWeights.Context * ratio(utf8.RuneCountInString(m.BusinessContext), opts.MinContextLen)
	total += discoveryWeights.Criteria * ratio(len(m.AcceptanceCriteria), opts.MinAcceptanceCriteria)

	var riskScore float64
	for _, r := range m.Risks {
		if r.Mitigation != "" {
			riskScore = 1.0
			break
		}
		riskScore = 0.5
	}
	total += discoveryWeights.Risks * riskScore
	total += discoveryWeights.Artifact * boolScore(m.HasArtifactForPhase(domain.PhaseDiscovery))
	return clamp01(total)
}

func scorePlan(m domain.Metadata, required []domain.TaskType, opts Options) float64 {
	var total float64
	total += planWeights.Tasks * ratio(len(m.Tasks), 3)

	present := 0
	for _, tt := range required {
		if m.HasTaskType(tt) {
			present++
		}
	}
	total += planWeights.TaskTypes * ratio(present, len(required))

	if len(m.Tasks) > 0 {
		estimated := 0
		within := 0
		implCount := 0
		for _, t := range m.Tasks {
			if t.EstimateMin > 0 {
				estimated++
			}
			if t.Type == domain.TaskImplementation {
				implCount++
				if t.EstimateMin > 0 && t.EstimateMin <= opts.MaxImplementationTaskMin {
					within++
				}
			}
		}
		total += planWeights.Estimates * (float64(estimated) / float64(len(m.Tasks)))
		if implCount == 0 {
			total += planWeights.Timebox
		} else {
			total += planWeights.Timebox * (float64(within) / float64(implCount))
		}
	}
	return clamp01(total)
}

func scoreImplementation(m domain.Metadata, opts Options) float64 {
	var total float64
	total += implementationWeights.Implementation * doneFraction(m.TasksOfType(domain.TaskImplementation))
	total += implementationWeights.Testing * doneFraction(m.TasksOfType(domain.TaskTesting))
	total += implementationWeights.Documentation * doneFraction(m.TasksOfType(domain.TaskDocumentation))

	// Coverage is an optional signal: full credit when unavailable, since
	// the corresponding sub-check is skipped rather than failed.
	if m.Signals.Coverage == nil {
		total += implementationWeights.Coverage
	} else if opts.CoverageThreshold > 0 {
		total += implementationWeights.Coverage * clamp01(*m.Signals.Coverage/opts.CoverageThreshold)
	}
	return clamp01(total)
}

func scoreReview(m domain.Metadata) float64 {
	var total float64
	if n := len(m.AcceptanceCriteria); n > 0 {
		verified := 0
		for _, c := range m.AcceptanceCriteria {
			if c.Verified {
				verified++
			}
		}
		total += reviewWeights.Criteria * (float64(verified) / float64(n))
	}
	if m.Signals.TestPassRate != nil {
		total += reviewWeights.PassRate * clamp01(*m.Signals.TestPassRate)
	}
	total += reviewWeights.CodeReview * boolScore(m.Approvals.CodeReview)
	total += reviewWeights.Security * boolScore(m.Approvals.SecurityScan)
	return clamp01(total)
}

func scoreOperations(m domain.Metadata) float64 {
	var total float64
	total += operationsWeights.Version * boolScore(m.Release.Version != "")
	total += operationsWeights.Deploy * boolScore(m.Release.Deployed)
	total += operationsWeights.Health * boolScore(m.Release.HealthCheckPassed)
	total += operationsWeights.Rollback * boolScore(m.Release.RollbackPlan != "" && m.Release.MonitoringConfigured)
	return clamp01(total)
}

func scoreEvolution(m domain.Metadata) float64 {
	var total float64
	total += evolutionWeights.Telemetry * boolScore(m.Evolution.TelemetryAnalysis != "")
	total += evolutionWeights.Feedback * boolScore(len(m.Evolution.UserFeedback) > 0)
	total += evolutionWeights.Improvements * ratio(len(m.Evolution.Improvements), 1)
	return clamp01(total)
}
