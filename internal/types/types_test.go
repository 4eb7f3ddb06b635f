package types

import (
	"testing"

	"github.com/licenseguard/licenseguard/internal/testutil"
)

func TestDependency_String(t *testing.T) {
	tests := []struct {
		dep  Dependency
		want string
	}{
		{Dependency{Name: "requests", Version: "2.31.0"}, "requests==2.31.0"},
		{Dependency{Name: "flask"}, "flask"},
	}

	for _, tt := range tests {
		if got := tt.dep.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLicenseRecord_Unknown(t *testing.T) {
	tests := []struct {
		name   string
		record LicenseRecord
		want   bool
	}{
		{"resolved", LicenseRecord{LicenseID: "MIT"}, false},
		{"unknown id", LicenseRecord{LicenseID: LicenseUnknown}, true},
		{"empty id", LicenseRecord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Unknown(); got != tt.want {
				t.Errorf("Unknown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolicy_RestrictedFails(t *testing.T) {
	if !(Policy{}).RestrictedFails() {
		t.Error("absent fail_on_restricted must default to true")
	}
	if !(Policy{FailOnRestricted: testutil.BoolPtr(true)}).RestrictedFails() {
		t.Error("explicit true must fail")
	}
	if (Policy{FailOnRestricted: testutil.BoolPtr(false)}).RestrictedFails() {
		t.Error("explicit false must not fail")
	}
}

func TestPolicy_JSONRoundTrip(t *testing.T) {
	testutil.AssertJSONRoundTrip(t, Policy{
		Approved:         []string{"MIT", "Apache-2.0"},
		Restricted:       []string{"GPL"},
		FailOnRestricted: testutil.BoolPtr(false),
		FailOnUnknown:    true,
	})
}

func TestPolicy_YAMLRoundTrip(t *testing.T) {
	testutil.AssertYAMLRoundTrip(t, Policy{
		Approved:   []string{"MIT"},
		Restricted: []string{"GPL", "AGPL"},
	})
}

func TestPolicy_OptionalFieldsOmitted(t *testing.T) {
	testutil.AssertJSONOmitsField(t, Policy{Approved: []string{"MIT"}}, "fail_on_restricted")
	testutil.AssertJSONOmitsField(t, Policy{Approved: []string{"MIT"}}, "fail_on_unknown")
}

func TestScanReport_JSONShape(t *testing.T) {
	report := ScanReport{
		SchemaVersion: "1.0",
		Timestamp:     "2026-01-01T00:00:00Z",
		PolicyFile:    "policy.json",
		ManifestFile:  "requirements.txt",
		Summary:       ScanSummary{TotalDependencies: 1, Approved: 1, Result: "PASS"},
		Dependencies: []DependencyLicenseStatus{
			{Name: "requests", Version: "2.31.0", LicenseID: "Apache-2.0", Decision: DecisionApproved, Reason: "ok"},
		},
		Verdict: Verdict{OverallPass: true, Violations: []Violation{}},
	}

	testutil.AssertJSONRoundTrip(t, report)
	testutil.AssertJSONContainsField(t, report, "schema_version")
	testutil.AssertJSONContainsField(t, report, "overall_pass")
}

func TestLicenseRecord_OptionalFieldsOmitted(t *testing.T) {
	record := LicenseRecord{
		Dependency: Dependency{Name: "flask"},
		LicenseID:  LicenseUnknown,
	}
	testutil.AssertJSONOmitsField(t, record, "resolved_version")
	testutil.AssertJSONOmitsField(t, record, "licenses")
}
