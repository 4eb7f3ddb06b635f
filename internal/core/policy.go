package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/licenseguard/licenseguard/internal/types"
	"gopkg.in/yaml.v3"
)

// LoadPolicy reads and parses a policy file.
// Policy files are JSON; files named *.yml or *.yaml are parsed as YAML with
// the same schema. A missing or malformed file is a fatal ConfigError — no
// license lookup may be attempted before the policy loads successfully.
func LoadPolicy(path string) (types.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Policy{}, NewConfigError(path, ErrPolicyNotFound)
		}
		return types.Policy{}, NewConfigError(path, fmt.Errorf("read policy: %w", err))
	}

	var policy types.Policy
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return types.Policy{}, NewConfigError(path, fmt.Errorf("parse policy: %w", err))
		}
	} else {
		if err := json.Unmarshal(data, &policy); err != nil {
			return types.Policy{}, NewConfigError(path, fmt.Errorf("parse policy: %w", err))
		}
	}

	if err := validatePolicy(&policy); err != nil {
		return types.Policy{}, NewConfigError(path, fmt.Errorf("invalid policy: %w", err))
	}

	// Normalize: nil lists become empty so callers can range without nil checks
	if policy.Approved == nil {
		policy.Approved = []string{}
	}
	if policy.Restricted == nil {
		policy.Restricted = []string{}
	}

	return policy, nil
}

// SavePolicy writes a policy to path as pretty-printed JSON.
func SavePolicy(path string, policy types.Policy) error {
	data, err := json.MarshalIndent(policy, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write policy %s: %w", path, err)
	}
	return nil
}

// StarterPolicy returns the policy scaffold written by `policy init`.
func StarterPolicy() types.Policy {
	return types.Policy{
		Approved:   append([]string{}, StarterApproved...),
		Restricted: append([]string{}, StarterRestricted...),
	}
}

// validatePolicy checks a policy for logical errors.
// A license identifier MUST NOT appear in both the approved and restricted lists.
func validatePolicy(policy *types.Policy) error {
	seen := make(map[string]struct{}, len(policy.Approved))
	for _, lic := range policy.Approved {
		if strings.TrimSpace(lic) == "" {
			return errors.New("approved list contains an empty identifier")
		}
		seen[strings.ToUpper(lic)] = struct{}{}
	}
	for _, lic := range policy.Restricted {
		if strings.TrimSpace(lic) == "" {
			return errors.New("restricted list contains an empty identifier")
		}
		if _, ok := seen[strings.ToUpper(lic)]; ok {
			return fmt.Errorf("license %q appears in both approved and restricted lists", lic)
		}
	}
	return nil
}

// isYAMLPath reports whether the file extension selects the YAML codec.
func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}
