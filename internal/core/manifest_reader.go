package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/licenseguard/licenseguard/internal/types"
)

// ManifestFormat is a format hint for manifest parsing.
type ManifestFormat string

// Supported manifest formats.
const (
	// FormatRequirements is the pip requirements.txt format (one dependency per line)
	FormatRequirements ManifestFormat = "requirements"
)

// Package-level compiled regexes for requirement line parsing.
var (
	// requirementRegex captures name, optional extras, and the trailing specifier.
	// Names can be followed by extras ([...]), version specifiers, or nothing.
	requirementRegex = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9._-]*)\s*(\[[^\]]*\])?\s*(.*)$`)

	// eggNameRegex extracts the package name from an egg= fragment of an editable install
	eggNameRegex = regexp.MustCompile(`egg=([a-zA-Z0-9][a-zA-Z0-9._-]*)`)

	// nameNormalizeRegex collapses runs of separators per PEP 503
	nameNormalizeRegex = regexp.MustCompile(`[-_.]+`)

	// inlineCommentRegex strips trailing inline comments (" # ...")
	inlineCommentRegex = regexp.MustCompile(`\s+#.*$`)
)

// ReadManifest loads a manifest file and parses it.
// A missing file is a fatal ConfigError; unparseable lines inside an existing
// file are warnings, never fatal.
func ReadManifest(path string, format ManifestFormat) ([]types.Dependency, []types.ParseWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, NewConfigError(path, ErrManifestNotFound)
		}
		return nil, nil, NewConfigError(path, fmt.Errorf("read manifest: %w", err))
	}
	deps, warnings, err := ParseManifest(data, format)
	if err != nil {
		return nil, nil, NewConfigError(path, err)
	}
	return deps, warnings, nil
}

// ParseManifest parses manifest content into an ordered dependency sequence.
// The order of the returned slice is the order of declaration in the manifest;
// duplicates are preserved. Lines that cannot be parsed are reported as
// warnings and skipped.
func ParseManifest(data []byte, format ManifestFormat) ([]types.Dependency, []types.ParseWarning, error) {
	switch format {
	case FormatRequirements, "":
		deps, warnings := parseRequirements(data)
		return deps, warnings, nil
	default:
		return nil, nil, fmt.Errorf("unsupported manifest format %q", format)
	}
}

// parseRequirements handles the pip requirements.txt line grammar:
// comments, blank lines, option lines (-r, --index-url, --hash), editable
// installs (-e / --editable), extras, environment markers, and version
// specifiers. Only "==" pins a version; other operators leave it empty.
func parseRequirements(data []byte) ([]types.Dependency, []types.ParseWarning) {
	var deps []types.Dependency
	var warnings []types.ParseWarning

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = inlineCommentRegex.ReplaceAllString(line, "")

		// Editable installs carry a URL or path, with the name in an egg= fragment
		if strings.HasPrefix(line, "-e ") || strings.HasPrefix(line, "--editable ") {
			if dep, ok := parseEditable(line); ok {
				deps = append(deps, dep)
			} else {
				warnings = append(warnings, types.ParseWarning{
					Line:    lineNo,
					Content: raw,
					Message: "editable install without a recognizable package name",
				})
			}
			continue
		}

		// Other pip options (-r, --index-url, --hash, ...) declare no dependency
		if strings.HasPrefix(line, "-") {
			continue
		}

		// Environment markers apply to the install, not the identity
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		dep, ok := parseRequirementLine(line)
		if !ok {
			warnings = append(warnings, types.ParseWarning{
				Line:    lineNo,
				Content: raw,
				Message: "unparseable requirement line",
			})
			continue
		}
		deps = append(deps, dep)
	}

	return deps, warnings
}

// parseRequirementLine parses a single "name[extras]<specifier>" line.
func parseRequirementLine(line string) (types.Dependency, bool) {
	m := requirementRegex.FindStringSubmatch(line)
	if m == nil {
		return types.Dependency{}, false
	}

	name := NormalizePackageName(m[1])
	spec := strings.TrimSpace(m[3])

	if spec == "" {
		return types.Dependency{Name: name}, true
	}

	// Anything that is not a version specifier makes the line unparseable
	if !strings.HasPrefix(spec, "==") && !strings.HasPrefix(spec, ">=") &&
		!strings.HasPrefix(spec, "<=") && !strings.HasPrefix(spec, ">") &&
		!strings.HasPrefix(spec, "<") && !strings.HasPrefix(spec, "!=") &&
		!strings.HasPrefix(spec, "~=") && !strings.HasPrefix(spec, "===") {
		return types.Dependency{}, false
	}

	// Only an exact pin fixes the version; ranges resolve to the default version
	if strings.HasPrefix(spec, "==") && !strings.HasPrefix(spec, "===") {
		version := strings.TrimPrefix(spec, "==")
		if idx := strings.Index(version, ","); idx >= 0 {
			version = version[:idx]
		}
		version = strings.TrimSpace(version)
		// Wildcard pins ("1.2.*") cannot be looked up as a concrete version
		if version != "" && !strings.ContainsRune(version, '*') {
			return types.Dependency{Name: name, Version: version}, true
		}
	}

	return types.Dependency{Name: name}, true
}

// parseEditable extracts a dependency name from an editable install line.
func parseEditable(line string) (types.Dependency, bool) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) < 2 {
		return types.Dependency{}, false
	}
	target := strings.TrimSpace(parts[1])

	if m := eggNameRegex.FindStringSubmatch(target); m != nil {
		return types.Dependency{Name: NormalizePackageName(m[1])}, true
	}

	// VCS or path reference: fall back to the trailing path element
	if strings.Contains(target, "@") || strings.Contains(target, "git+") {
		base := strings.TrimSuffix(target, "/")
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			base = base[idx+1:]
		}
		base = strings.TrimSuffix(base, ".git")
		if base != "" {
			return types.Dependency{Name: NormalizePackageName(base)}, true
		}
	}

	return types.Dependency{}, false
}

// NormalizePackageName normalizes a PyPI package name per PEP 503:
// lowercase, with runs of ".", "-", "_" collapsed to a single "-".
func NormalizePackageName(name string) string {
	return nameNormalizeRegex.ReplaceAllString(strings.ToLower(name), "-")
}
