package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ModsDocument wraps item XML fragments in a minimal STATUTE volume document.
// The congress and package ID live in the second document-level extension,
// matching the layout GPO produces.
func ModsDocument(congress, packageID string, items ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<mods xmlns="http://www.loc.gov/mods/v3" version="3.3">` + "\n")
	b.WriteString("<extension><collectionCode>STATUTE</collectionCode></extension>\n")
	fmt.Fprintf(&b, "<extension><congress>%s</congress><accessId>%s</accessId></extension>\n", congress, packageID)
	for _, item := range items {
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("</mods>\n")
	return b.String()
}

// PublicLawItem returns a well-formed public-law item for congress 82,
// bill hr 1, public law 82-100. Tests needing variations should build their
// own fragments.
func PublicLawItem() string {
	return `<relatedItem>
  <titleInfo><title>An Act to provide revenue.</title></titleInfo>
  <location>
    <url displayLabel="Content Detail">https://www.govinfo.gov/app/details/STATUTE-65/STATUTE-65-Pg1</url>
    <url displayLabel="PDF rendition">https://www.govinfo.gov/content/pkg/STATUTE-65/pdf/STATUTE-65-Pg1.pdf</url>
  </location>
  <part type="article"><extent unit="pages"><start>1</start></extent></part>
  <extension>
    <granuleClass>PUBLICLAW</granuleClass>
    <accessId>STATUTE-65-Pg1</accessId>
    <granuleDate>1951-10-20</granuleDate>
    <descriptor>Revenue</descriptor>
    <volume>65</volume>
    <pagePosition>1</pagePosition>
    <originChamber>HOUSE</originChamber>
    <congCommittee chamber="H"><name>Ways and Means</name></congCommittee>
    <bill congress="82" type="HR" number="1"/>
    <law congress="82" number="100" isPrivate="false"/>
  </extension>
</relatedItem>`
}

// FrontMatterItem returns an item with a granule class the converter skips.
func FrontMatterItem() string {
	return `<relatedItem>
  <titleInfo><title>Front matter</title></titleInfo>
  <extension>
    <granuleClass>FRONTMATTER</granuleClass>
    <accessId>STATUTE-65-FrontMatter</accessId>
    <granuleDate>1951-01-01</granuleDate>
  </extension>
</relatedItem>`
}

// WriteVolume lays a MODS document out on disk the way the FDsys mirror
// does (<root>/<year>/STATUTE-<volume>/mods.xml) and returns the batch dir.
func WriteVolume(t *testing.T, statuteRoot string, year, volume int, xml string) string {
	t.Helper()
	dir := filepath.Join(statuteRoot, fmt.Sprintf("%d", year), fmt.Sprintf("STATUTE-%d", volume))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create volume dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mods.xml"), []byte(xml), 0o644); err != nil {
		t.Fatalf("write mods.xml: %v", err)
	}
	return dir
}
