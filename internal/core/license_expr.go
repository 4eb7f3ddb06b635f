package core

import (
	"regexp"
	"strings"
)

// Package-level compiled regex splitting SPDX compound expressions.
var spdxOperatorRegex = regexp.MustCompile(`(?i)\s+AND\s+|\s+OR\s+|\s+WITH\s+`)

// SplitLicenseExpression splits an SPDX expression into its component
// identifiers, dropping operators and surrounding parentheses.
// "MIT OR (GPL-2.0 WITH Classpath-exception-2.0)" yields
// ["MIT", "GPL-2.0", "Classpath-exception-2.0"].
func SplitLicenseExpression(expr string) []string {
	parts := spdxOperatorRegex.Split(expr, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "()")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchesRestricted reports whether any component of the license expression
// matches the restricted identifier. Matching is case-insensitive and covers
// license families by prefix: restricted "GPL" matches "GPL-3.0" and "GPL.2",
// but not "LGPL-2.1".
func MatchesRestricted(expr string, restricted string) bool {
	r := strings.ToUpper(restricted)
	for _, part := range SplitLicenseExpression(expr) {
		p := strings.ToUpper(part)
		if p == r || strings.HasPrefix(p, r+"-") || strings.HasPrefix(p, r+".") {
			return true
		}
	}
	return false
}

// MatchesApproved reports whether any component of the license expression
// exactly matches the approved identifier (case-insensitive).
func MatchesApproved(expr string, approved string) bool {
	for _, part := range SplitLicenseExpression(expr) {
		if strings.EqualFold(part, approved) {
			return true
		}
	}
	return false
}
