package gate

import "github.com/rfontaine/stagegate/internal/domain"

func fptr(v float64) *float64 { return &v }

// completeDiscoveryMetadata returns metadata that satisfies the discovery
// gate with default options.
func completeDiscoveryMetadata() domain.Metadata {
	return domain.Metadata{
		BusinessContext: "support volume for password resets is growing and burning agent time",
		AcceptanceCriteria: []domain.AcceptanceCriterion{
			{Text: "user can request a reset link"},
			{Text: "reset link expires after one hour"},
			{Text: "every reset is audit-logged"},
		},
		Risks: []domain.Risk{
			{Description: "email deliverability", Mitigation: "retry with backoff and a fallback provider"},
		},
	}
}
