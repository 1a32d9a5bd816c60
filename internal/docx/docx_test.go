package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"file-forge/internal/rng"
)

func TestWriteTextDocLandsAtOrUnderTarget(t *testing.T) {
	const target, margin = 300_000, 10_000
	path := filepath.Join(t.TempDir(), "text.docx")

	info, err := WriteTextDoc(path, TextDocOptions{Target: target, Margin: margin}, rng.New(42))
	if err != nil {
		t.Fatalf("WriteTextDoc failed: %v", err)
	}
	if info.FinalBytes > target {
		t.Fatalf("final size %d exceeds target %d", info.FinalBytes, target)
	}
	if info.FinalBytes < target-margin-1_000 {
		t.Fatalf("final size %d fell far below target %d", info.FinalBytes, target)
	}
	if info.Paragraphs == 0 {
		t.Fatal("no paragraphs were written")
	}
	if err := ValidateParts(path); err != nil {
		t.Fatalf("package failed validation: %v", err)
	}
}

func TestWriteTextDocStoresEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stored.docx")
	if _, err := WriteTextDoc(path, TextDocOptions{Target: 100_000, Margin: 5_000}, rng.New(1)); err != nil {
		t.Fatalf("WriteTextDoc failed: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Method != zip.Store {
			t.Fatalf("part %s uses method %d, want stored", f.Name, f.Method)
		}
	}
}

func TestWriteTextDocBodyIsWellFormed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wf.docx")
	if _, err := WriteTextDoc(path, TextDocOptions{Target: 150_000, Margin: 5_000}, rng.New(7)); err != nil {
		t.Fatalf("WriteTextDoc failed: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	defer zr.Close()
	data, err := readPart(&zr.Reader, "word/document.xml")
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := parseWellFormed(strings.NewReader(string(data))); err != nil {
		t.Fatalf("body is not well-formed: %v", err)
	}
}

func TestWriteTextDocRichCarriesProps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rich.docx")
	opts := TextDocOptions{Target: 200_000, Margin: 10_000, Rich: true, Title: "Quarterly <Review>"}
	if _, err := WriteTextDoc(path, opts, rng.New(3)); err != nil {
		t.Fatalf("WriteTextDoc failed: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	defer zr.Close()
	names := zipNames(&zr.Reader)
	for _, want := range []string{"docProps/core.xml", "docProps/app.xml", "word/styles.xml"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("rich package missing %s", want)
		}
	}
	core, err := readPart(&zr.Reader, "docProps/core.xml")
	if err != nil {
		t.Fatalf("read core props: %v", err)
	}
	if !strings.Contains(string(core), "Quarterly &lt;Review&gt;") {
		t.Fatal("title was not escaped into core properties")
	}
}

func TestWriteTextDocNormalizesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	info, err := WriteTextDoc(path, TextDocOptions{Target: 80_000, Margin: 4_000}, rng.New(1))
	if err != nil {
		t.Fatalf("WriteTextDoc failed: %v", err)
	}
	if !strings.HasSuffix(info.Path, ".docx") {
		t.Fatalf("output path %s is missing .docx", info.Path)
	}
	if _, err := os.Stat(info.Path); err != nil {
		t.Fatalf("normalized output missing: %v", err)
	}
}

func TestWriteImageDocReferencesResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.docx")
	opts := ImageDocOptions{
		NumImages:     3,
		Target:        500_000,
		PNGWidth:      64,
		PageWidthCm:   21.0,
		MarginLeftCm:  2.0,
		MarginRightCm: 2.0,
		Cushion:       5_000,
	}
	info, err := WriteImageDoc(path, opts, rng.New(11))
	if err != nil {
		t.Fatalf("WriteImageDoc failed: %v", err)
	}
	if err := Validate(info.Path); err != nil {
		t.Fatalf("package failed validation: %v", err)
	}
	if info.FinalBytes > opts.Target {
		t.Fatalf("final size %d exceeds target %d", info.FinalBytes, opts.Target)
	}
	if info.FinalBytes < opts.Target-opts.Cushion-20_000 {
		t.Fatalf("final size %d fell far below target %d", info.FinalBytes, opts.Target)
	}
	if info.Healed != 0 {
		t.Fatalf("fixed geometry should never heal, got %d substitutions", info.Healed)
	}
	if info.CyEMU < 1 || info.CxEMU < 1 {
		t.Fatalf("display extent %dx%d EMU is degenerate", info.CxEMU, info.CyEMU)
	}
}

func TestDocumentXMLEmbedsMatchRels(t *testing.T) {
	doc := DocumentXML(4, 6_000_000, 3_000_000)
	ids := embedIDs(doc)
	if len(ids) != 4 {
		t.Fatalf("found %d embeds, want 4", len(ids))
	}
	rels := DocRels(4)
	for _, id := range ids {
		if !strings.Contains(rels, `Id="`+id+`"`) {
			t.Fatalf("embed %s missing from relationships", id)
		}
	}
}

func TestValidateCatchesMissingMedia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	zw := zip.NewWriter(file)
	parts := map[string]string{
		"[Content_Types].xml":          contentTypesImage,
		"_rels/.rels":                  relsRoot,
		"word/_rels/document.xml.rels": DocRels(1),
		"word/document.xml":            DocumentXML(1, 1000, 1000),
		// word/media/image00001.png deliberately absent
	}
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	file.Close()

	err = Validate(path)
	if err == nil {
		t.Fatal("expected validation failure for missing media part")
	}
	if !strings.Contains(err.Error(), "media") {
		t.Fatalf("error does not name the missing media part: %v", err)
	}
}

func TestEmuFromCm(t *testing.T) {
	// One inch is exactly 914400 EMU.
	if got := EmuFromCm(2.54); got != 914400 {
		t.Fatalf("EmuFromCm(2.54) = %d, want 914400", got)
	}
}
