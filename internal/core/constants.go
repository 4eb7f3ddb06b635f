package core

// Default file paths relative to the working directory.
const (
	// DefaultPolicyFile is the policy filename used when --policy is not given
	DefaultPolicyFile = "policy.json"
	// DefaultManifestFile is the manifest filename used when --manifest is not given
	DefaultManifestFile = "requirements.txt"
)

// deps.dev metadata service parameters.
const (
	// DepsDevAPIBase is the base URL of the deps.dev license metadata API
	DepsDevAPIBase = "https://api.deps.dev/v3alpha"
	// SystemPyPI is the deps.dev system identifier for Python packages
	SystemPyPI = "pypi"
)

// StarterApproved is the allow list written by `licenseguard policy init`.
// StarterApproved uses SPDX license identifiers.
var StarterApproved = []string{
	"MIT",
	"Apache-2.0",
	"BSD-3-Clause",
	"BSD-2-Clause",
	"ISC",
	"Unlicense",
	"CC0-1.0",
}

// StarterRestricted is the deny list written by `licenseguard policy init`.
// Copyleft families are matched by prefix, so "GPL" also covers "GPL-3.0".
var StarterRestricted = []string{
	"GPL",
	"AGPL",
	"SSPL",
}
