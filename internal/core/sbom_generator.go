package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"
	"github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/spdx/v2/common"
	spdx23 "github.com/spdx/tools-golang/spdx/v2/v2_3"

	"github.com/licenseguard/licenseguard/internal/purl"
	"github.com/licenseguard/licenseguard/internal/types"
	"github.com/licenseguard/licenseguard/internal/version"
)

// SBOMFormat represents supported SBOM output formats
type SBOMFormat string

const (
	// SBOMFormatCycloneDX is the CycloneDX 1.5 JSON format
	SBOMFormatCycloneDX SBOMFormat = "cyclonedx"
	// SBOMFormatSPDX is the SPDX 2.3 JSON format
	SBOMFormatSPDX SBOMFormat = "spdx"
)

// SBOMGenerator generates Software Bill of Materials documents from the
// resolved license records of a scan.
type SBOMGenerator struct {
	projectName string
}

// NewSBOMGenerator creates a new SBOMGenerator for the named project.
func NewSBOMGenerator(projectName string) *SBOMGenerator {
	return &SBOMGenerator{projectName: projectName}
}

// Generate creates an SBOM in the specified format.
func (g *SBOMGenerator) Generate(records []types.LicenseRecord, format SBOMFormat) ([]byte, error) {
	switch format {
	case SBOMFormatCycloneDX:
		return g.generateCycloneDX(records)
	case SBOMFormatSPDX:
		return g.generateSPDX(records)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// componentVersion prefers the registry-resolved version over the declared pin.
func componentVersion(record *types.LicenseRecord) string {
	if record.ResolvedVersion != "" {
		return record.ResolvedVersion
	}
	return record.Dependency.Version
}

// generateCycloneDX creates a CycloneDX 1.5 JSON SBOM
func (g *SBOMGenerator) generateCycloneDX(records []types.LicenseRecord) ([]byte, error) {
	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	bom.Version = 1

	timestamp := time.Now().UTC().Format(time.RFC3339)
	bom.Metadata = &cdx.Metadata{
		Timestamp: timestamp,
		Tools: &cdx.ToolsChoice{
			Tools: &[]cdx.Tool{
				{
					Vendor:  "licenseguard",
					Name:    "licenseguard",
					Version: version.GetVersion(),
				},
			},
		},
		Component: &cdx.Component{
			Type:    cdx.ComponentTypeApplication,
			Name:    g.projectName,
			Version: "local",
		},
	}

	components := make([]cdx.Component, 0, len(records))
	for i := range records {
		components = append(components, g.buildCycloneDXComponent(&records[i]))
	}
	bom.Components = &components

	var buf strings.Builder
	encoder := cdx.NewBOMEncoder(&buf, cdx.BOMFileFormatJSON)
	encoder.SetPretty(true)
	if err := encoder.Encode(bom); err != nil {
		return nil, fmt.Errorf("encode CycloneDX: %w", err)
	}

	return []byte(buf.String()), nil
}

// buildCycloneDXComponent creates a CycloneDX component from a license record
func (g *SBOMGenerator) buildCycloneDXComponent(record *types.LicenseRecord) cdx.Component {
	ver := componentVersion(record)
	name := record.Dependency.Name

	bomRef := name
	if ver != "" {
		bomRef = fmt.Sprintf("%s@%s", name, ver)
	}

	component := cdx.Component{
		Type:       cdx.ComponentTypeLibrary,
		BOMRef:     bomRef,
		Name:       name,
		Version:    ver,
		PackageURL: purl.NewPyPI(name, ver).String(),
	}

	// Declared licenses go out as SPDX expressions; unknown stays absent
	if !record.Unknown() {
		licenses := make(cdx.Licenses, 0, len(record.Licenses))
		for _, lic := range record.Licenses {
			licenses = append(licenses, cdx.LicenseChoice{Expression: lic})
		}
		component.Licenses = &licenses
	}

	properties := []cdx.Property{
		{Name: "licenseguard:declared", Value: record.Dependency.String()},
	}
	if record.FailureReason != "" {
		properties = append(properties, cdx.Property{
			Name:  "licenseguard:resolution_failure",
			Value: record.FailureReason,
		})
	}
	component.Properties = &properties

	return component
}

// generateSPDX creates an SPDX 2.3 JSON SBOM
func (g *SBOMGenerator) generateSPDX(records []types.LicenseRecord) ([]byte, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	doc := &spdx23.Document{
		SPDXVersion:       spdx.Version,
		DataLicense:       spdx.DataLicense,
		SPDXIdentifier:    common.ElementID("DOCUMENT"),
		DocumentName:      g.projectName + "-dependencies-sbom",
		DocumentNamespace: fmt.Sprintf("https://licenseguard.dev/spdx/%s/%s", g.projectName, uuid.New().String()),
		CreationInfo: &spdx23.CreationInfo{
			Created: timestamp,
			Creators: []common.Creator{
				{CreatorType: "Tool", Creator: "licenseguard-" + version.GetVersion()},
			},
		},
	}

	packages := make([]*spdx23.Package, 0, len(records))
	relationships := make([]*spdx23.Relationship, 0, len(records))

	for i := range records {
		pkg := g.buildSPDXPackage(&records[i])
		packages = append(packages, pkg)

		// RefB must match the package's SPDXID exactly (including "Package-" prefix)
		packageSPDXID := "Package-" + sanitizeSPDXID(records[i].Dependency.Name)
		relationships = append(relationships, &spdx23.Relationship{
			RefA:         common.MakeDocElementID("", "DOCUMENT"),
			RefB:         common.MakeDocElementID("", packageSPDXID),
			Relationship: "DESCRIBES",
		})
	}

	doc.Packages = packages
	doc.Relationships = relationships

	return spdxToJSON(doc)
}

// buildSPDXPackage creates an SPDX package from a license record
func (g *SBOMGenerator) buildSPDXPackage(record *types.LicenseRecord) *spdx23.Package {
	name := record.Dependency.Name
	spdxID := common.ElementID("Package-" + sanitizeSPDXID(name))

	pkg := &spdx23.Package{
		PackageName:             name,
		PackageSPDXIdentifier:   spdxID,
		PackageVersion:          componentVersion(record),
		PackageDownloadLocation: fmt.Sprintf("https://pypi.org/project/%s/", name),
		FilesAnalyzed:           false,
		PackageCopyrightText:    "NOASSERTION",
	}

	if record.Unknown() {
		pkg.PackageLicenseDeclared = "NOASSERTION"
		pkg.PackageLicenseConcluded = "NOASSERTION"
	} else {
		pkg.PackageLicenseDeclared = record.LicenseID
		pkg.PackageLicenseConcluded = record.LicenseID
	}

	if p := purl.NewPyPI(name, componentVersion(record)).String(); p != "" {
		pkg.PackageExternalReferences = []*spdx23.PackageExternalReference{
			{
				Category: common.CategoryPackageManager,
				RefType:  "purl",
				Locator:  p,
			},
		}
	}

	if record.FailureReason != "" {
		pkg.PackageComment = "resolution_failure=" + record.FailureReason
	}

	return pkg
}

// sanitizeSPDXID converts a string to a valid SPDX identifier
// SPDX IDs must match [a-zA-Z0-9.-]+
func sanitizeSPDXID(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' {
			result.WriteRune(r)
		} else {
			result.WriteRune('-')
		}
	}
	return result.String()
}

// spdxJSON is the JSON representation of an SPDX document
// Using explicit struct to ensure proper JSON field names per SPDX 2.3 spec
type spdxJSON struct {
	SPDXVersion       string                 `json:"spdxVersion"`
	DataLicense       string                 `json:"dataLicense"`
	SPDXID            string                 `json:"SPDXID"`
	Name              string                 `json:"name"`
	DocumentNamespace string                 `json:"documentNamespace"`
	CreationInfo      spdxCreationInfoJSON   `json:"creationInfo"`
	Packages          []spdxPackageJSON      `json:"packages"`
	Relationships     []spdxRelationshipJSON `json:"relationships"`
}

type spdxCreationInfoJSON struct {
	Created  string   `json:"created"`
	Creators []string `json:"creators"`
}

type spdxPackageJSON struct {
	SPDXID           string                `json:"SPDXID"`
	Name             string                `json:"name"`
	VersionInfo      string                `json:"versionInfo"`
	DownloadLocation string                `json:"downloadLocation"`
	LicenseDeclared  string                `json:"licenseDeclared"`
	LicenseConcluded string                `json:"licenseConcluded"`
	CopyrightText    string                `json:"copyrightText"`
	FilesAnalyzed    bool                  `json:"filesAnalyzed"`
	ExternalRefs     []spdxExternalRefJSON `json:"externalRefs,omitempty"`
	Comment          string                `json:"comment,omitempty"`
}

type spdxExternalRefJSON struct {
	ReferenceCategory string `json:"referenceCategory"`
	ReferenceType     string `json:"referenceType"`
	ReferenceLocator  string `json:"referenceLocator"`
}

type spdxRelationshipJSON struct {
	SPDXElementID      string `json:"spdxElementId"`
	RelationshipType   string `json:"relationshipType"`
	RelatedSPDXElement string `json:"relatedSpdxElement"`
}

// spdxToJSON converts an SPDX document to JSON bytes using proper struct marshaling
func spdxToJSON(doc *spdx23.Document) ([]byte, error) {
	creators := make([]string, 0, len(doc.CreationInfo.Creators))
	for _, c := range doc.CreationInfo.Creators {
		creators = append(creators, fmt.Sprintf("%s: %s", c.CreatorType, c.Creator))
	}

	packages := make([]spdxPackageJSON, 0, len(doc.Packages))
	for _, pkg := range doc.Packages {
		p := spdxPackageJSON{
			SPDXID:           fmt.Sprintf("SPDXRef-%s", pkg.PackageSPDXIdentifier),
			Name:             pkg.PackageName,
			VersionInfo:      pkg.PackageVersion,
			DownloadLocation: pkg.PackageDownloadLocation,
			LicenseDeclared:  pkg.PackageLicenseDeclared,
			LicenseConcluded: pkg.PackageLicenseConcluded,
			CopyrightText:    pkg.PackageCopyrightText,
			FilesAnalyzed:    pkg.FilesAnalyzed,
			Comment:          pkg.PackageComment,
		}

		if len(pkg.PackageExternalReferences) > 0 {
			refs := make([]spdxExternalRefJSON, 0, len(pkg.PackageExternalReferences))
			for _, ref := range pkg.PackageExternalReferences {
				refs = append(refs, spdxExternalRefJSON{
					ReferenceCategory: string(ref.Category),
					ReferenceType:     ref.RefType,
					ReferenceLocator:  ref.Locator,
				})
			}
			p.ExternalRefs = refs
		}

		packages = append(packages, p)
	}

	relationships := make([]spdxRelationshipJSON, 0, len(doc.Relationships))
	for _, rel := range doc.Relationships {
		relationships = append(relationships, spdxRelationshipJSON{
			SPDXElementID:      fmt.Sprintf("SPDXRef-%s", rel.RefA.ElementRefID),
			RelationshipType:   rel.Relationship,
			RelatedSPDXElement: fmt.Sprintf("SPDXRef-%s", rel.RefB.ElementRefID),
		})
	}

	jsonDoc := spdxJSON{
		SPDXVersion:       doc.SPDXVersion,
		DataLicense:       doc.DataLicense,
		SPDXID:            fmt.Sprintf("SPDXRef-%s", doc.SPDXIdentifier),
		Name:              doc.DocumentName,
		DocumentNamespace: doc.DocumentNamespace,
		CreationInfo: spdxCreationInfoJSON{
			Created:  doc.CreationInfo.Created,
			Creators: creators,
		},
		Packages:      packages,
		Relationships: relationships,
	}

	return json.MarshalIndent(jsonDoc, "", "  ")
}
