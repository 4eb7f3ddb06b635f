package tui

import (
	"fmt"
	"strings"

	"github.com/licenseguard/licenseguard/internal/core"
	"github.com/licenseguard/licenseguard/internal/types"
)

// decisionMark maps a policy decision to its report glyph.
func decisionMark(decision string) string {
	switch decision {
	case types.DecisionApproved:
		return styleSuccess.Render("✔")
	case types.DecisionRestricted:
		return styleErr.Render("✖")
	default:
		return styleWarn.Render("!")
	}
}

// PrintScanReport renders the scan report for human consumption.
// Dependencies appear in manifest order so CI output is reproducible across
// runs with identical inputs.
func PrintScanReport(report *types.ScanReport, mode core.OutputMode) {
	if mode == core.OutputQuiet {
		printQuietReport(report)
		return
	}

	fmt.Println(StyleTitle("License Compliance Report"))
	fmt.Printf("Policy:   %s\n", report.PolicyFile)
	fmt.Printf("Manifest: %s\n\n", report.ManifestFile)

	for _, dep := range report.Dependencies {
		name := dep.Name
		if dep.ResolvedVersion != "" {
			name = fmt.Sprintf("%s==%s", dep.Name, dep.ResolvedVersion)
		} else if dep.Version != "" {
			name = fmt.Sprintf("%s==%s", dep.Name, dep.Version)
		}
		fmt.Printf("  %s %-40s %-24s %s\n", decisionMark(dep.Decision), name, dep.LicenseID, dep.Reason)
	}

	if len(report.Verdict.Violations) > 0 {
		fmt.Println()
		fmt.Println(styleErr.Render(strings.Repeat("=", 60)))
		fmt.Println(styleErr.Render("  Policy Violations Detected"))
		fmt.Println(styleErr.Render(strings.Repeat("=", 60)))
		fmt.Println()
		fmt.Println("The following dependencies violate the license policy:")
		fmt.Println()
		for _, v := range report.Verdict.Violations {
			fmt.Printf("  • %s\n", v.Dependency.String())
			fmt.Printf("    License: %s (%s)\n", v.LicenseID, v.Reason)
		}
		fmt.Println()
		fmt.Println("Action required: remove or replace these dependencies, or update the")
		fmt.Println("policy file if an exception has been approved.")
	}

	if len(report.Verdict.Warnings) > 0 {
		fmt.Println()
		for _, w := range report.Verdict.Warnings {
			PrintWarning(w.Dependency.String(),
				fmt.Sprintf("license %s: %s (not blocking)", w.LicenseID, w.Reason))
		}
	}

	fmt.Println()
	summary := fmt.Sprintf("%d dependencies: %d approved, %d restricted, %d unknown, %d unlisted",
		report.Summary.TotalDependencies,
		report.Summary.Approved,
		report.Summary.Restricted,
		report.Summary.Unknown,
		report.Summary.Unlisted)

	switch report.Summary.Result {
	case "PASS":
		PrintSuccess("PASS - " + summary)
	case "WARN":
		PrintWarning("WARN", summary)
	default:
		PrintError("FAIL", summary)
	}
}

// printQuietReport prints one line per violation plus the final result.
func printQuietReport(report *types.ScanReport) {
	for _, v := range report.Verdict.Violations {
		fmt.Printf("%s %s %s\n", v.Dependency.String(), v.LicenseID, v.Reason)
	}
	fmt.Println(report.Summary.Result)
}
