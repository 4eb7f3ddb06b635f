package core

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/licenseguard/licenseguard/internal/types"
)

// scanFixture writes a policy and manifest into a temp dir and returns ScanOptions.
func scanFixture(t *testing.T, policyJSON, manifest string) ScanOptions {
	t.Helper()
	dir := t.TempDir()
	return ScanOptions{
		PolicyPath:   writeTestFile(t, dir, "policy.json", policyJSON),
		ManifestPath: writeTestFile(t, dir, "requirements.txt", manifest),
		Format:       FormatRequirements,
	}
}

func TestScan_PassingRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), types.Dependency{Name: "requests", Version: "2.31.0"}).
		Return(resolvedRecord("requests", "2.31.0", "Apache-2.0"))

	opts := scanFixture(t,
		`{"approved": ["Apache-2.0"], "restricted": ["GPL"]}`,
		"requests==2.31.0\n")

	svc := NewScanService(resolver, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !report.Verdict.OverallPass {
		t.Errorf("expected pass, got violations %v", report.Verdict.Violations)
	}
	if report.Summary.Result != "PASS" {
		t.Errorf("expected PASS summary, got %s", report.Summary.Result)
	}
	if report.Summary.Approved != 1 || report.Summary.TotalDependencies != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
}

func TestScan_RestrictedViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), types.Dependency{Name: "left-pad", Version: "1.0.0"}).
		Return(resolvedRecord("left-pad", "1.0.0", "GPL-3.0"))
	resolver.EXPECT().
		Resolve(gomock.Any(), types.Dependency{Name: "requests", Version: "2.31.0"}).
		Return(resolvedRecord("requests", "2.31.0", "Apache-2.0"))

	opts := scanFixture(t,
		`{"approved": ["Apache-2.0"], "restricted": ["GPL"]}`,
		"left-pad==1.0.0\nrequests==2.31.0\n")

	svc := NewScanService(resolver, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if report.Verdict.OverallPass {
		t.Error("expected fail with a restricted dependency")
	}
	if len(report.Verdict.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", report.Verdict.Violations)
	}
	if report.Verdict.Violations[0].Dependency.Name != "left-pad" {
		t.Errorf("unexpected violation: %+v", report.Verdict.Violations[0])
	}
	if report.Summary.Result != "FAIL" {
		t.Errorf("expected FAIL summary, got %s", report.Summary.Result)
	}
}

func TestScan_NoLookupOnMissingPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Zero EXPECT calls: any Resolve invocation fails the test.
	resolver := NewMockLicenseResolver(ctrl)

	dir := t.TempDir()
	opts := ScanOptions{
		PolicyPath:   dir + "/missing-policy.json",
		ManifestPath: writeTestFile(t, dir, "requirements.txt", "requests==2.31.0\n"),
	}

	svc := NewScanService(resolver, nil, nil)
	_, err := svc.Scan(context.Background(), opts)
	if err == nil {
		t.Fatal("expected ConfigError for missing policy")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestScan_NoLookupOnMalformedPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)

	dir := t.TempDir()
	opts := ScanOptions{
		PolicyPath:   writeTestFile(t, dir, "policy.json", `{"approved": [`),
		ManifestPath: writeTestFile(t, dir, "requirements.txt", "requests==2.31.0\n"),
	}

	svc := NewScanService(resolver, nil, nil)
	_, err := svc.Scan(context.Background(), opts)
	if err == nil {
		t.Fatal("expected ConfigError for malformed policy")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestScan_MissingManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)

	dir := t.TempDir()
	opts := ScanOptions{
		PolicyPath:   writeTestFile(t, dir, "policy.json", `{"approved": ["MIT"], "restricted": []}`),
		ManifestPath: dir + "/missing-requirements.txt",
	}

	svc := NewScanService(resolver, nil, nil)
	_, err := svc.Scan(context.Background(), opts)
	if err == nil {
		t.Fatal("expected ConfigError for missing manifest")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestScan_UnknownDoesNotAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), types.Dependency{Name: "ghost", Version: "1.0"}).
		Return(unknownRecord("ghost", "1.0", "not found in registry"))
	resolver.EXPECT().
		Resolve(gomock.Any(), types.Dependency{Name: "requests", Version: "2.31.0"}).
		Return(resolvedRecord("requests", "2.31.0", "Apache-2.0"))

	opts := scanFixture(t,
		`{"approved": ["Apache-2.0"], "restricted": ["GPL"]}`,
		"ghost==1.0\nrequests==2.31.0\n")

	svc := NewScanService(resolver, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !report.Verdict.OverallPass {
		t.Error("unknown licenses must warn, not fail, by default")
	}
	if report.Summary.Result != "WARN" {
		t.Errorf("expected WARN summary, got %s", report.Summary.Result)
	}
	if report.Summary.Unknown != 1 || report.Summary.Approved != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
}

func TestScan_FailOnUnknownOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)
	resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(unknownRecord("ghost", "1.0", "timeout"))

	opts := scanFixture(t,
		`{"approved": ["Apache-2.0"], "restricted": ["GPL"]}`,
		"ghost==1.0\n")
	opts.FailOnUnknown = true

	svc := NewScanService(resolver, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if report.Verdict.OverallPass {
		t.Error("--fail-on-unknown must fail closed")
	}
	if len(report.Verdict.Violations) != 1 || report.Verdict.Violations[0].Reason != types.ReasonUnknown {
		t.Errorf("unexpected violations: %v", report.Verdict.Violations)
	}
}

func TestScan_EmptyManifestPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockLicenseResolver(ctrl)

	opts := scanFixture(t,
		`{"approved": ["MIT"], "restricted": ["GPL"]}`,
		"# nothing here\n")

	svc := NewScanService(resolver, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if !report.Verdict.OverallPass {
		t.Error("empty manifest must pass")
	}
	if report.Summary.TotalDependencies != 0 {
		t.Errorf("expected 0 dependencies, got %d", report.Summary.TotalDependencies)
	}
}

func TestScan_ParallelMatchesSequential(t *testing.T) {
	policyJSON := `{"approved": ["MIT"], "restricted": ["GPL"]}`
	manifest := "a==1.0\nb==1.0\nc==1.0\nd==1.0\n"

	stub := &StubResolver{
		ResolveFunc: func(_ context.Context, dep types.Dependency) types.LicenseRecord {
			if dep.Name == "c" {
				return resolvedRecord(dep.Name, dep.Version, "GPL-3.0")
			}
			return resolvedRecord(dep.Name, dep.Version, "MIT")
		},
	}

	sequential := scanFixture(t, policyJSON, manifest)
	svc := NewScanService(stub, nil, nil)
	seqReport, err := svc.Scan(context.Background(), sequential)
	if err != nil {
		t.Fatalf("sequential scan: %v", err)
	}

	parallel := scanFixture(t, policyJSON, manifest)
	parallel.Parallel = true
	parallel.Workers = 4
	parReport, err := svc.Scan(context.Background(), parallel)
	if err != nil {
		t.Fatalf("parallel scan: %v", err)
	}

	if len(seqReport.Dependencies) != len(parReport.Dependencies) {
		t.Fatalf("dependency count mismatch: %d vs %d",
			len(seqReport.Dependencies), len(parReport.Dependencies))
	}
	for i := range seqReport.Dependencies {
		if seqReport.Dependencies[i].Name != parReport.Dependencies[i].Name {
			t.Errorf("index %d: %s vs %s", i,
				seqReport.Dependencies[i].Name, parReport.Dependencies[i].Name)
		}
		if seqReport.Dependencies[i].Decision != parReport.Dependencies[i].Decision {
			t.Errorf("decision mismatch at %d", i)
		}
	}
	if seqReport.Verdict.OverallPass != parReport.Verdict.OverallPass {
		t.Error("parallel execution changed the verdict")
	}
}

func TestScan_ReportMetadata(t *testing.T) {
	stub := &StubResolver{}
	opts := scanFixture(t, `{"approved": ["MIT"], "restricted": []}`, "a==1.0\n")

	svc := NewScanService(stub, nil, nil)
	report, err := svc.Scan(context.Background(), opts)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if report.SchemaVersion != scanSchemaVersion {
		t.Errorf("expected schema version %s, got %s", scanSchemaVersion, report.SchemaVersion)
	}
	if report.PolicyFile != opts.PolicyPath || report.ManifestFile != opts.ManifestPath {
		t.Errorf("report must carry input paths: %+v", report)
	}
	if report.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}
