package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/licenseguard/licenseguard/internal/types"
	"github.com/licenseguard/licenseguard/internal/version"
)

// DefaultLookupTimeout bounds a single metadata lookup.
const DefaultLookupTimeout = 10 * time.Second

// LicenseResolver resolves the declared license of a dependency.
// Implementations never return an error: every failure mode (network error,
// timeout, not-found, malformed response) is data, recorded as an "unknown"
// license so one unreachable dependency cannot abort the rest of the run.
type LicenseResolver interface {
	Resolve(ctx context.Context, dep types.Dependency) types.LicenseRecord
}

// Compile-time interface satisfaction check.
var _ LicenseResolver = (*DepsDevResolver)(nil)

// DepsDevResolver resolves licenses against the deps.dev metadata API.
type DepsDevResolver struct {
	client  *http.Client
	baseURL string
	system  string
}

// NewDepsDevResolver creates a resolver for the given metadata endpoint.
// A nil httpClient gets a default client with DefaultLookupTimeout; an empty
// baseURL selects the public deps.dev API.
func NewDepsDevResolver(httpClient *http.Client, baseURL string) *DepsDevResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultLookupTimeout}
	}
	if baseURL == "" {
		baseURL = DepsDevAPIBase
	}
	return &DepsDevResolver{
		client:  httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		system:  SystemPyPI,
	}
}

// packageResponse is the deps.dev package lookup response shape.
type packageResponse struct {
	Versions []struct {
		VersionKey struct {
			Version string `json:"version"`
		} `json:"versionKey"`
		IsDefault bool `json:"isDefault"`
	} `json:"versions"`
}

// versionResponse is the deps.dev version lookup response shape.
type versionResponse struct {
	Licenses       []string `json:"licenses"`
	LicenseDetails []struct {
		Spdx    string `json:"spdx"`
		License string `json:"license"`
	} `json:"licenseDetails"`
}

// Resolve performs the license lookup for a single dependency.
// An unpinned dependency first resolves to the registry's default version.
func (r *DepsDevResolver) Resolve(ctx context.Context, dep types.Dependency) types.LicenseRecord {
	record := types.LicenseRecord{
		Dependency: dep,
		LicenseID:  types.LicenseUnknown,
	}

	pkgVersion := dep.Version
	if pkgVersion == "" {
		v, err := r.defaultVersion(ctx, dep.Name)
		if err != nil {
			record.FailureReason = err.Error()
			return record
		}
		pkgVersion = v
	}
	record.ResolvedVersion = pkgVersion

	licenses, err := r.versionLicenses(ctx, dep.Name, pkgVersion)
	if err != nil {
		record.FailureReason = err.Error()
		return record
	}
	if len(licenses) == 0 {
		record.FailureReason = "no license metadata in registry"
		return record
	}

	record.Licenses = licenses
	record.LicenseID = strings.Join(licenses, " AND ")
	return record
}

// defaultVersion returns the registry's default (latest) version for a package.
func (r *DepsDevResolver) defaultVersion(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/systems/%s/packages/%s", r.baseURL, r.system, url.PathEscape(name))

	var pkg packageResponse
	if err := r.getJSON(ctx, endpoint, &pkg); err != nil {
		return "", err
	}
	if len(pkg.Versions) == 0 {
		return "", fmt.Errorf("no versions found for %q", name)
	}

	for _, v := range pkg.Versions {
		if v.IsDefault {
			return v.VersionKey.Version, nil
		}
	}
	return pkg.Versions[0].VersionKey.Version, nil
}

// versionLicenses returns the declared licenses of a specific package version.
func (r *DepsDevResolver) versionLicenses(ctx context.Context, name, pkgVersion string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/systems/%s/packages/%s/versions/%s",
		r.baseURL, r.system, url.PathEscape(name), url.PathEscape(pkgVersion))

	var ver versionResponse
	if err := r.getJSON(ctx, endpoint, &ver); err != nil {
		return nil, err
	}

	licenses := ver.Licenses
	if len(licenses) == 0 {
		for _, d := range ver.LicenseDetails {
			switch {
			case d.Spdx != "":
				licenses = append(licenses, d.Spdx)
			case d.License != "":
				licenses = append(licenses, d.License)
			}
		}
	}

	out := licenses[:0]
	for _, lic := range licenses {
		if strings.TrimSpace(lic) != "" {
			out = append(out, lic)
		}
	}
	return out, nil
}

// getJSON performs a GET request and decodes the JSON body into dst.
func (r *DepsDevResolver) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("licenseguard/%s", version.GetVersion()))

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("metadata lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("not found in registry")
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("rate limited by metadata service")
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("metadata service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
