package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/licenseguard/licenseguard/internal/types"
)

func TestLoadPolicy_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json", `{
  "approved": ["MIT", "Apache-2.0"],
  "restricted": ["GPL"]
}`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}

	if len(policy.Approved) != 2 {
		t.Errorf("expected 2 approved licenses, got %d", len(policy.Approved))
	}
	if len(policy.Restricted) != 1 || policy.Restricted[0] != "GPL" {
		t.Errorf("expected restricted [GPL], got %v", policy.Restricted)
	}
	if !policy.RestrictedFails() {
		t.Error("expected fail_on_restricted to default to true")
	}
	if policy.FailOnUnknown {
		t.Error("expected fail_on_unknown to default to false")
	}
}

func TestLoadPolicy_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.yaml", `approved:
  - MIT
restricted:
  - GPL
fail_on_unknown: true
`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}

	if len(policy.Approved) != 1 || policy.Approved[0] != "MIT" {
		t.Errorf("expected approved [MIT], got %v", policy.Approved)
	}
	if !policy.FailOnUnknown {
		t.Error("expected fail_on_unknown true from YAML")
	}
}

func TestLoadPolicy_FailOnRestrictedExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json",
		`{"approved": ["MIT"], "restricted": ["GPL"], "fail_on_restricted": false}`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}
	if policy.RestrictedFails() {
		t.Error("expected explicit fail_on_restricted=false to be honored")
	}
}

func TestLoadPolicy_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatal("expected error for missing policy file")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrPolicyNotFound) {
		t.Errorf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestLoadPolicy_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json", `{"approved": ["MIT"`)

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatal("expected error for malformed policy")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestLoadPolicy_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.yml", "approved: [MIT\n")

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML policy")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestLoadPolicy_OverlapRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json",
		`{"approved": ["MIT", "GPL-3.0"], "restricted": ["gpl-3.0"]}`)

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatal("expected error for license in both lists")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestLoadPolicy_EmptyIdentifierRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json", `{"approved": ["MIT", "  "], "restricted": []}`)

	_, err := LoadPolicy(path)
	if err == nil {
		t.Fatal("expected error for empty identifier in approved list")
	}
}

func TestLoadPolicy_NilListsNormalized(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "policy.json", `{}`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}
	if policy.Approved == nil || policy.Restricted == nil {
		t.Error("expected nil lists to be normalized to empty slices")
	}
}

func TestSavePolicy_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.json")

	original := types.Policy{
		Approved:   []string{"MIT"},
		Restricted: []string{"GPL"},
	}
	if err := SavePolicy(path, original); err != nil {
		t.Fatalf("SavePolicy returned error: %v", err)
	}

	loaded, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}
	if len(loaded.Approved) != 1 || loaded.Approved[0] != "MIT" {
		t.Errorf("expected approved [MIT] after round-trip, got %v", loaded.Approved)
	}
}

func TestStarterPolicy_IsValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.json")

	if err := SavePolicy(path, StarterPolicy()); err != nil {
		t.Fatalf("SavePolicy returned error: %v", err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("starter policy failed to load: %v", err)
	}
	if len(policy.Approved) == 0 || len(policy.Restricted) == 0 {
		t.Error("expected starter policy to carry non-empty lists")
	}
}
