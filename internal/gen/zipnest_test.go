package gen

import (
	"archive/zip"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunZipNestShallowContainsDeep(t *testing.T) {
	dir := t.TempDir()
	res, err := RunZipNest(ZipNestConfig{Dir: dir, Depth: 3, Payload: 256, Seed: 4, Force: true})
	if err != nil {
		t.Fatalf("RunZipNest failed: %v", err)
	}
	if len(res.Zips) != 3 {
		t.Fatalf("expected 3 archives, got %d", len(res.Zips))
	}

	outer := filepath.Join(dir, "level1.zip")
	zr, err := zip.OpenReader(outer)
	if err != nil {
		t.Fatalf("open outer archive: %v", err)
	}
	defer zr.Close()

	var sawDeepZip, sawMarker bool
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "level2.zip") {
			sawDeepZip = true
		}
		if strings.HasSuffix(f.Name, "file.txt") {
			sawMarker = true
		}
	}
	if !sawDeepZip {
		t.Fatal("outer archive does not contain the deeper archive")
	}
	if !sawMarker {
		t.Fatal("outer archive does not contain the bottom marker file")
	}
}

func TestRunZipNestRejectsZeroDepth(t *testing.T) {
	if _, err := RunZipNest(ZipNestConfig{Dir: t.TempDir(), Depth: 0, Force: true}); err == nil {
		t.Fatal("expected a depth validation error")
	}
}
