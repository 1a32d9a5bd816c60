package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationshipSet struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

// ValidateParts checks the structural skeleton every document flavor must
// have: the package opens as a ZIP, the mandatory parts exist, and the
// small descriptor parts parse as XML. The document body itself is not
// read, so this stays cheap even for multi-GB text documents.
func ValidateParts(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open package %s: %w", path, err)
	}
	defer zr.Close()
	return validatePartsIn(&zr.Reader)
}

func validatePartsIn(zr *zip.Reader) error {
	names := zipNames(zr)
	for _, req := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if _, ok := names[req]; !ok {
			return fmt.Errorf("missing required part %s", req)
		}
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels"} {
		if err := parsePart(zr, name); err != nil {
			return err
		}
	}
	return nil
}

// Validate performs the full reference check for image documents: the
// skeleton is valid, the document body parses, and every image embed id
// resolves to a relationship whose media part actually exists in the
// package.
func Validate(path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open package %s: %w", path, err)
	}
	defer zr.Close()

	if err := validatePartsIn(&zr.Reader); err != nil {
		return err
	}
	names := zipNames(&zr.Reader)
	if _, ok := names["word/_rels/document.xml.rels"]; !ok {
		return fmt.Errorf("missing required part word/_rels/document.xml.rels")
	}

	relsData, err := readPart(&zr.Reader, "word/_rels/document.xml.rels")
	if err != nil {
		return err
	}
	var rels relationshipSet
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return fmt.Errorf("failed to parse document relationships: %w", err)
	}
	relByID := make(map[string]relationship, len(rels.Rels))
	for _, rel := range rels.Rels {
		relByID[rel.ID] = rel
	}

	docData, err := readPart(&zr.Reader, "word/document.xml")
	if err != nil {
		return err
	}
	if err := parseWellFormed(strings.NewReader(string(docData))); err != nil {
		return fmt.Errorf("document body is not well-formed XML: %w", err)
	}

	embeds := embedIDs(string(docData))
	if len(embeds) != len(relByID) {
		return fmt.Errorf("document references %d images but relationships list %d", len(embeds), len(relByID))
	}
	for _, id := range embeds {
		rel, ok := relByID[id]
		if !ok {
			return fmt.Errorf("embed id %s has no relationship entry", id)
		}
		partName := "word/" + rel.Target
		if _, ok := names[partName]; !ok {
			return fmt.Errorf("relationship %s targets missing part %s", id, partName)
		}
	}
	return nil
}

// embedIDs scans the document body for r:embed attribute values.
func embedIDs(doc string) []string {
	const marker = `r:embed="`
	var ids []string
	for i := 0; ; {
		j := strings.Index(doc[i:], marker)
		if j < 0 {
			break
		}
		start := i + j + len(marker)
		end := strings.IndexByte(doc[start:], '"')
		if end < 0 {
			break
		}
		ids = append(ids, doc[start:start+end])
		i = start + end + 1
	}
	return ids
}

func zipNames(zr *zip.Reader) map[string]*zip.File {
	names := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = f
	}
	return names
}

func readPart(zr *zip.Reader, name string) ([]byte, error) {
	f, ok := zipNames(zr)[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return data, nil
}

func parsePart(zr *zip.Reader, name string) error {
	data, err := readPart(zr, name)
	if err != nil {
		return err
	}
	if err := parseWellFormed(strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("part %s is not well-formed XML: %w", name, err)
	}
	return nil
}

func parseWellFormed(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
