// Package gate implements the per-phase exit criteria, the confidence
// scorer, the phase sequencer, and the validator registry.
//
// Validators are read-only: they never mutate the work item and evaluating
// one twice with unchanged input yields the identical result. A failed gate
// is expressed in the returned GateResult, never as an error.
package gate

import "github.com/rfontaine/stagegate/internal/domain"

// Validator is the common contract every phase gate implements.
type Validator interface {
	// Phase returns the phase whose exit criteria this gate checks.
	Phase() domain.Phase

	// Validate evaluates the gate against the work item's metadata.
	Validate(w *domain.WorkItem) domain.GateResult
}

// malformedResult is the shared GateFailed-shaped answer for a work item
// whose stored metadata could not be decoded.
func malformedResult(opts Options) domain.GateResult {
	return domain.GateResult{
		Passed:              false,
		MissingRequirements: []string{"metadata: stored metadata document is malformed"},
		Confidence:          0,
		Band:                opts.Thresholds.BandFor(0),
	}
}

// finish assembles a GateResult from collected deficiencies and a score.
func finish(opts Options, missing []string, confidence float64) domain.GateResult {
	return domain.GateResult{
		Passed:              len(missing) == 0,
		MissingRequirements: missing,
		Confidence:          confidence,
		Band:                opts.Thresholds.BandFor(confidence),
	}
}
