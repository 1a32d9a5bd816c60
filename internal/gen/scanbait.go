package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The standard 68-byte EICAR test string, stored in two halves so the
// built binary itself does not match scanner signatures.
var eicarHead = `X5O!P%@AP[4\PZX54(P^)` + `7CC)7}$EICAR`
var eicarTail = `-STANDARD-ANTIVIRUS-TEST-` + `FILE!$H+H*`

const (
	vbsStub = `MsgBox "This is a test macro"`
	jsStub  = `alert("Hello from test JS")`
	pdfJS   = `app.alert("PDF JS Test!");`
)

// BaitKinds lists the payload families scanbait can produce.
var BaitKinds = []string{"eicar", "macros", "pdfjs"}

// ScanBaitConfig shapes the scanner-bait generator.
type ScanBaitConfig struct {
	Dir       string
	Kinds     []string // subset of BaitKinds; empty means all
	EicarName string
	VBSName   string
	JSName    string
	PDFName   string
	Force     bool
}

// Validate rejects parameter mistakes before any file is touched.
func (c ScanBaitConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory is required")
	}
	for _, kind := range c.Kinds {
		switch kind {
		case "eicar", "macros", "pdfjs":
		default:
			return fmt.Errorf("unknown bait kind %q (expected eicar, macros or pdfjs)", kind)
		}
	}
	return nil
}

// RunScanBait writes the selected scanner-bait payloads into Dir: the
// EICAR test string, one-line macro stubs, and a PDF whose open action
// runs an embedded JavaScript alert.
func RunScanBait(cfg ScanBaitConfig) (Result, error) {
	res := Result{Path: cfg.Dir}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create %s: %w", cfg.Dir, err)
	}

	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = BaitKinds
	}
	start := time.Now()
	for _, kind := range kinds {
		var files map[string][]byte
		switch kind {
		case "eicar":
			files = map[string][]byte{
				orName(cfg.EicarName, "eicar.txt"): []byte(eicarHead + eicarTail),
			}
		case "macros":
			files = map[string][]byte{
				orName(cfg.VBSName, "macro.vbs"): []byte(vbsStub),
				orName(cfg.JSName, "script.js"): []byte(jsStub),
			}
		case "pdfjs":
			files = map[string][]byte{
				orName(cfg.PDFName, "pdf_js_test.pdf"): buildJSPDF(pdfJS),
			}
		}
		for name, data := range files {
			path := filepath.Join(cfg.Dir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return res, fmt.Errorf("failed to write %s: %w", path, err)
			}
			res.Files++
			res.Bytes += int64(len(data))
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func orName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// buildJSPDF renders a minimal but fully xref'd PDF whose catalog
// registers script in the document name tree and fires it as the open
// action.
func buildJSPDF(script string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R /Names << /JavaScript 4 0 R >> /OpenAction 5 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		"<< /Names [(EmbeddedJS) 5 0 R] >>",
		fmt.Sprintf("<< /S /JavaScript /JS (%s) >>", escapePDFString(script)),
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.5\n%\xE2\xE3\xCF\xD3\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

func escapePDFString(value string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(value)
}
