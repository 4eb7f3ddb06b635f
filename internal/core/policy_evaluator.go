package core

import (
	"fmt"

	"github.com/licenseguard/licenseguard/internal/types"
)

// PolicyEvaluatorInterface defines the contract for license policy evaluation.
// PolicyEvaluatorInterface enables mocking in tests and alternative policy backends.
type PolicyEvaluatorInterface interface {
	// Decide determines the policy decision for a single license record.
	// Decide returns one of the types.Decision* constants plus a human-readable reason.
	Decide(record types.LicenseRecord) (string, string)

	// Evaluate produces the Verdict for a full record sequence.
	// Violations and warnings preserve the input (manifest) order.
	Evaluate(records []types.LicenseRecord) types.Verdict
}

// Compile-time interface satisfaction check.
var _ PolicyEvaluatorInterface = (*PolicyEvaluator)(nil)

// PolicyEvaluator evaluates license records against a loaded Policy.
// It is pure decision logic: no network, no filesystem, deterministic and
// idempotent for a given (records, policy) pair.
type PolicyEvaluator struct {
	policy types.Policy
}

// NewPolicyEvaluator creates a PolicyEvaluator from a loaded policy.
func NewPolicyEvaluator(policy types.Policy) *PolicyEvaluator {
	return &PolicyEvaluator{policy: policy}
}

// Decide determines the policy decision for a single record.
// Precedence: restricted match → approved match → unknown/unlisted.
func (e *PolicyEvaluator) Decide(record types.LicenseRecord) (string, string) {
	// Restricted always wins, even when another declared license is approved
	for _, expr := range record.Licenses {
		for _, restricted := range e.policy.Restricted {
			if MatchesRestricted(expr, restricted) {
				return types.DecisionRestricted,
					fmt.Sprintf("%s matches restricted entry %q", expr, restricted)
			}
		}
	}

	if record.Unknown() {
		reason := "license could not be resolved"
		if record.FailureReason != "" {
			reason = fmt.Sprintf("license could not be resolved (%s)", record.FailureReason)
		}
		return types.DecisionUnknown, reason
	}

	for _, expr := range record.Licenses {
		for _, approved := range e.policy.Approved {
			if MatchesApproved(expr, approved) {
				return types.DecisionApproved,
					fmt.Sprintf("%s is in the approved list", expr)
			}
		}
	}

	return types.DecisionUnlisted,
		fmt.Sprintf("%s is in neither the approved nor the restricted list", record.LicenseID)
}

// Evaluate produces the Verdict for the full record sequence.
// The verdict is pass iff no record produces a violation; whether restricted
// and unknown/unlisted decisions count as violations follows the policy's
// fail_on_restricted and fail_on_unknown flags.
func (e *PolicyEvaluator) Evaluate(records []types.LicenseRecord) types.Verdict {
	verdict := types.Verdict{
		Violations: []types.Violation{},
	}

	for _, record := range records {
		decision, _ := e.Decide(record)

		var reason string
		var fails bool
		switch decision {
		case types.DecisionApproved:
			continue
		case types.DecisionRestricted:
			reason = types.ReasonRestricted
			fails = e.policy.RestrictedFails()
		case types.DecisionUnknown:
			reason = types.ReasonUnknown
			fails = e.policy.FailOnUnknown
		case types.DecisionUnlisted:
			reason = types.ReasonUnlisted
			fails = e.policy.FailOnUnknown
		}

		violation := types.Violation{
			Dependency: record.Dependency,
			LicenseID:  record.LicenseID,
			Reason:     reason,
		}
		if fails {
			verdict.Violations = append(verdict.Violations, violation)
		} else {
			verdict.Warnings = append(verdict.Warnings, violation)
		}
	}

	verdict.OverallPass = len(verdict.Violations) == 0
	return verdict
}
