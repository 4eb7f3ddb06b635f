// Package types defines data structures for licenseguard policies, resolution results, and reports.
package types

// Dependency is a single direct dependency as declared in a manifest.
// Identity is (Name, Version) exactly as declared; duplicates are preserved in manifest order.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"` // Empty when the manifest does not pin a version
}

// String formats the dependency as name or name==version, matching requirements syntax.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "==" + d.Version
}

// LicenseUnknown is the canonical identifier for a license that could not be resolved.
const LicenseUnknown = "unknown"

// LicenseRecord is the immutable result of resolving one dependency's license.
// Exactly one record is produced per input dependency, at the same index.
type LicenseRecord struct {
	Dependency      Dependency `json:"dependency"`
	Licenses        []string   `json:"licenses,omitempty"` // SPDX expressions as returned by the metadata service
	LicenseID       string     `json:"license_id"`         // Canonical identifier, or LicenseUnknown
	ResolvedVersion string     `json:"resolved_version,omitempty"`
	FailureReason   string     `json:"failure_reason,omitempty"` // Why resolution fell back to unknown
}

// Unknown reports whether the record carries no usable license information.
func (r LicenseRecord) Unknown() bool {
	return r.LicenseID == "" || r.LicenseID == LicenseUnknown
}

// Policy classifies license identifiers into approved/restricted sets plus strictness flags.
// Loaded once from a policy file and immutable for the run.
type Policy struct {
	Approved   []string `json:"approved" yaml:"approved"`
	Restricted []string `json:"restricted" yaml:"restricted"`

	// FailOnRestricted controls whether restricted matches fail the run (default true).
	// A pointer distinguishes "absent" from an explicit false.
	FailOnRestricted *bool `json:"fail_on_restricted,omitempty" yaml:"fail_on_restricted,omitempty"`

	// FailOnUnknown fails closed on unknown or unlisted licenses (default false).
	FailOnUnknown bool `json:"fail_on_unknown,omitempty" yaml:"fail_on_unknown,omitempty"`
}

// RestrictedFails returns the effective FailOnRestricted value.
func (p Policy) RestrictedFails() bool {
	return p.FailOnRestricted == nil || *p.FailOnRestricted
}

// Violation reasons produced by the evaluator.
const (
	ReasonRestricted = "restricted" // License matched the restricted list
	ReasonUnknown    = "unknown"    // No license metadata could be resolved
	ReasonUnlisted   = "unlisted"   // License resolved but appears in neither list
)

// PolicyDecision represents the outcome of evaluating one record against a Policy.
const (
	DecisionApproved   = "approved"
	DecisionRestricted = "restricted"
	DecisionUnknown    = "unknown"
	DecisionUnlisted   = "unlisted"
)

// Violation describes a single dependency that failed (or warned against) the policy.
type Violation struct {
	Dependency Dependency `json:"dependency"`
	LicenseID  string     `json:"license_id"`
	Reason     string     `json:"reason"`
}

// Verdict is the terminal artifact of a run: overall pass/fail plus itemized
// violations and warnings in manifest order.
type Verdict struct {
	OverallPass bool        `json:"overall_pass"`
	Violations  []Violation `json:"violations"`
	Warnings    []Violation `json:"warnings,omitempty"`
}

// ScanReport is the top-level structure produced by a scan run, used for both
// human-readable and JSON output.
type ScanReport struct {
	SchemaVersion string                    `json:"schema_version"`
	Timestamp     string                    `json:"timestamp"`
	PolicyFile    string                    `json:"policy_file"`
	ManifestFile  string                    `json:"manifest_file"`
	Summary       ScanSummary               `json:"summary"`
	Dependencies  []DependencyLicenseStatus `json:"dependencies"`
	Verdict       Verdict                   `json:"verdict"`
}

// ScanSummary contains aggregate statistics for the scan.
type ScanSummary struct {
	TotalDependencies int    `json:"total_dependencies"`
	Approved          int    `json:"approved"`
	Restricted        int    `json:"restricted"`
	Unknown           int    `json:"unknown"`
	Unlisted          int    `json:"unlisted"`
	Result            string `json:"result"` // PASS, FAIL, WARN
}

// DependencyLicenseStatus is the per-dependency line of a scan report.
type DependencyLicenseStatus struct {
	Name            string   `json:"name"`
	Version         string   `json:"version,omitempty"`
	ResolvedVersion string   `json:"resolved_version,omitempty"`
	Licenses        []string `json:"licenses,omitempty"`
	LicenseID       string   `json:"license_id"`
	Decision        string   `json:"decision"` // One of the PolicyDecision constants
	Reason          string   `json:"reason"`   // Human-readable reason for the decision
}

// ParseWarning records a manifest line that could not be parsed.
// Warnings are surfaced, never fatal; the run continues with the lines that parsed.
type ParseWarning struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Message string `json:"message"`
}
