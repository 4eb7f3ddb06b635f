// Package purl provides Package URL (PURL) generation utilities.
// PURLs are a standardized way to identify software packages across ecosystems.
// See: https://github.com/package-url/purl-spec
//
// This package is used by SBOM generation (CycloneDX, SPDX) to give each
// scanned dependency a stable cross-tool identifier.
package purl

import (
	"net/url"
	"regexp"
	"strings"
)

// Type represents the package type in a PURL
type Type string

// PURL type constants for supported package ecosystems
const (
	TypePyPI    Type = "pypi"    // Python packages from PyPI
	TypeGeneric Type = "generic" // Generic/unknown package type
)

// nameNormalizeRegex collapses separator runs per the PURL pypi type rules
var nameNormalizeRegex = regexp.MustCompile(`[-_.]+`)

// PURL represents a parsed Package URL
type PURL struct {
	Type       Type
	Namespace  string // Unused for pypi (flat namespace)
	Name       string
	Version    string
	Qualifiers map[string]string
	Subpath    string
}

// NewPyPI creates a PURL for a PyPI package. The name is normalized to the
// canonical pypi form (lowercase, separator runs collapsed to "-").
func NewPyPI(name, version string) *PURL {
	return &PURL{
		Type:    TypePyPI,
		Name:    nameNormalizeRegex.ReplaceAllString(strings.ToLower(name), "-"),
		Version: version,
	}
}

// String formats the PURL as a standard PURL string
func (p *PURL) String() string {
	if p.Type == "" || p.Name == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("pkg:")
	sb.WriteString(string(p.Type))
	sb.WriteRune('/')

	if p.Namespace != "" {
		sb.WriteString(url.PathEscape(p.Namespace))
		sb.WriteRune('/')
	}

	sb.WriteString(url.PathEscape(p.Name))

	if p.Version != "" {
		sb.WriteRune('@')
		sb.WriteString(url.PathEscape(p.Version))
	}

	if len(p.Qualifiers) > 0 {
		sb.WriteRune('?')
		first := true
		for _, k := range sortedKeys(p.Qualifiers) {
			if !first {
				sb.WriteRune('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteRune('=')
			sb.WriteString(url.QueryEscape(p.Qualifiers[k]))
			first = false
		}
	}

	if p.Subpath != "" {
		sb.WriteRune('#')
		sb.WriteString(p.Subpath)
	}

	return sb.String()
}

// sortedKeys returns map keys in deterministic order so PURL output is stable.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
