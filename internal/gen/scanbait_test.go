package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunScanBaitEicar(t *testing.T) {
	dir := t.TempDir()
	res, err := RunScanBait(ScanBaitConfig{Dir: dir, Kinds: []string{"eicar"}})
	if err != nil {
		t.Fatalf("RunScanBait failed: %v", err)
	}
	if res.Files != 1 {
		t.Fatalf("expected 1 file, got %d", res.Files)
	}
	data, err := os.ReadFile(filepath.Join(dir, "eicar.txt"))
	if err != nil {
		t.Fatalf("read eicar file: %v", err)
	}
	if len(data) != 68 {
		t.Fatalf("EICAR payload must be 68 bytes, got %d", len(data))
	}
	if !bytes.HasPrefix(data, []byte("X5O!")) || !bytes.HasSuffix(data, []byte("$H+H*")) {
		t.Fatal("EICAR payload does not match the standard string shape")
	}
}

func TestRunScanBaitMacrosAndPDF(t *testing.T) {
	dir := t.TempDir()
	res, err := RunScanBait(ScanBaitConfig{Dir: dir})
	if err != nil {
		t.Fatalf("RunScanBait failed: %v", err)
	}
	if res.Files != 4 {
		t.Fatalf("expected 4 files across all kinds, got %d", res.Files)
	}
	for _, name := range []string{"eicar.txt", "macro.vbs", "script.js", "pdf_js_test.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing payload %s: %v", name, err)
		}
	}
	pdf, err := os.ReadFile(filepath.Join(dir, "pdf_js_test.pdf"))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-1.5")) {
		t.Fatal("pdf missing version header")
	}
	for _, needle := range []string{"/OpenAction", "/JavaScript", "app.alert", "xref", "startxref", "%%EOF"} {
		if !bytes.Contains(pdf, []byte(needle)) {
			t.Fatalf("pdf missing %s", needle)
		}
	}
}

func TestRunScanBaitRejectsUnknownKind(t *testing.T) {
	if _, err := RunScanBait(ScanBaitConfig{Dir: t.TempDir(), Kinds: []string{"ransom"}}); err == nil {
		t.Fatal("expected an error for an unknown bait kind")
	}
}
