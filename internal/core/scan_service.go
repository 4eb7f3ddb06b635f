package core

import (
	"context"
	"fmt"
	"time"

	"github.com/licenseguard/licenseguard/internal/types"
)

const scanSchemaVersion = "1.0"

// UICallback abstracts user-facing output so the engine stays testable and
// output-format agnostic (styled terminal, plain text, or JSON).
type UICallback interface {
	ShowError(title, message string)
	ShowSuccess(message string)
	ShowWarning(title, message string)
	AskConfirmation(title, message string) bool
	GetOutputMode() OutputMode
	FormatJSON(output JSONOutput) error
}

// SilentUICallback discards all output. Used in tests.
type SilentUICallback struct{}

// ShowError discards the message.
func (SilentUICallback) ShowError(_, _ string) {}

// ShowSuccess discards the message.
func (SilentUICallback) ShowSuccess(_ string) {}

// ShowWarning discards the message.
func (SilentUICallback) ShowWarning(_, _ string) {}

// AskConfirmation declines without prompting.
func (SilentUICallback) AskConfirmation(_, _ string) bool { return false }

// GetOutputMode returns quiet mode.
func (SilentUICallback) GetOutputMode() OutputMode { return OutputQuiet }

// FormatJSON discards the output.
func (SilentUICallback) FormatJSON(_ JSONOutput) error { return nil }

// ScanOptions configures a single scan run.
type ScanOptions struct {
	PolicyPath    string
	ManifestPath  string
	Format        ManifestFormat
	FailOnUnknown bool // CLI override; ORed with the policy file's flag
	Parallel      bool
	Workers       int // 0 = NumCPU (capped), used only with Parallel
}

// ScanServiceInterface defines the contract for the scan pipeline.
type ScanServiceInterface interface {
	// Scan runs parse → resolve → evaluate and returns the full report.
	// A ConfigError is returned before any license lookup is attempted.
	Scan(ctx context.Context, opts ScanOptions) (*types.ScanReport, error)
}

// Compile-time interface satisfaction check.
var _ ScanServiceInterface = (*ScanService)(nil)

// ProgressFactory builds a progress tracker for a run of the given size.
// The tui package provides bubbletea, plain-text, and no-op implementations.
type ProgressFactory func(total int, label string) ProgressTracker

// ScanService orchestrates the linear pipeline:
// Manifest Reader → License Resolver (per item) → Policy Evaluator → report.
type ScanService struct {
	resolver    LicenseResolver
	ui          UICallback
	newProgress ProgressFactory
}

// NewScanService creates a ScanService. A nil ui is silenced; a nil progress
// factory disables progress reporting.
func NewScanService(resolver LicenseResolver, ui UICallback, newProgress ProgressFactory) *ScanService {
	if ui == nil {
		ui = SilentUICallback{}
	}
	return &ScanService{
		resolver:    resolver,
		ui:          ui,
		newProgress: newProgress,
	}
}

// Scan executes one full run. Control flows strictly linearly; resolution
// failures surface as "unknown" records inside the report, and only
// configuration problems (policy/manifest unreadable) return an error.
func (s *ScanService) Scan(ctx context.Context, opts ScanOptions) (*types.ScanReport, error) {
	policy, err := LoadPolicy(opts.PolicyPath)
	if err != nil {
		return nil, err
	}
	if opts.FailOnUnknown {
		policy.FailOnUnknown = true
	}

	deps, warnings, err := ReadManifest(opts.ManifestPath, opts.Format)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.ui.ShowWarning("Manifest",
			fmt.Sprintf("line %d skipped (%s): %s", w.Line, w.Message, w.Content))
	}

	var progress ProgressTracker
	if s.newProgress != nil && len(deps) > 0 {
		progress = s.newProgress(len(deps), "Resolving licenses")
	}

	workers := 1
	if opts.Parallel {
		workers = opts.Workers
	}
	executor := NewParallelExecutor(workers)
	records := executor.ResolveAll(ctx, deps, s.resolver, progress)
	if progress != nil {
		progress.Complete()
	}

	evaluator := NewPolicyEvaluator(policy)
	verdict := evaluator.Evaluate(records)

	report := buildScanReport(records, evaluator, verdict, opts)
	return report, nil
}

// buildScanReport assembles the per-dependency statuses and summary.
func buildScanReport(
	records []types.LicenseRecord,
	evaluator *PolicyEvaluator,
	verdict types.Verdict,
	opts ScanOptions,
) *types.ScanReport {
	report := &types.ScanReport{
		SchemaVersion: scanSchemaVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		PolicyFile:    opts.PolicyPath,
		ManifestFile:  opts.ManifestPath,
		Dependencies:  make([]types.DependencyLicenseStatus, 0, len(records)),
		Verdict:       verdict,
	}

	for _, record := range records {
		decision, reason := evaluator.Decide(record)

		report.Dependencies = append(report.Dependencies, types.DependencyLicenseStatus{
			Name:            record.Dependency.Name,
			Version:         record.Dependency.Version,
			ResolvedVersion: record.ResolvedVersion,
			Licenses:        record.Licenses,
			LicenseID:       record.LicenseID,
			Decision:        decision,
			Reason:          reason,
		})

		switch decision {
		case types.DecisionApproved:
			report.Summary.Approved++
		case types.DecisionRestricted:
			report.Summary.Restricted++
		case types.DecisionUnknown:
			report.Summary.Unknown++
		case types.DecisionUnlisted:
			report.Summary.Unlisted++
		}
	}

	report.Summary.TotalDependencies = len(records)

	switch {
	case len(verdict.Violations) > 0:
		report.Summary.Result = "FAIL"
	case len(verdict.Warnings) > 0:
		report.Summary.Result = "WARN"
	default:
		report.Summary.Result = "PASS"
	}

	return report
}
