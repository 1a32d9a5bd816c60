package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"file-forge/internal/rng"
)

func readZipNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive %s: %v", path, err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	entries := []Entry{
		{Name: "a.txt", Body: []byte("alpha")},
		{Name: "dir/b.txt", Body: []byte("beta"), Mode: 0o600},
	}
	if err := Write(path, entries); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 2 {
		t.Fatalf("archive holds %d entries, want 2", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	body, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(body) != "alpha" {
		t.Fatalf("entry body %q, want alpha", body)
	}
}

func TestZipDirUsesRelativeSlashedNames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "tree")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	for _, name := range []string{"top.txt", "sub/leaf.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	zipPath, err := ZipDir(dir)
	if err != nil {
		t.Fatalf("ZipDir failed: %v", err)
	}
	if zipPath != dir+".zip" {
		t.Fatalf("archive at %s, want sibling of %s", zipPath, dir)
	}
	names := readZipNames(t, zipPath)
	want := []string{"sub/leaf.txt", "top.txt"}
	if len(names) != len(want) {
		t.Fatalf("entries %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entries %v, want %v", names, want)
		}
	}
}

func TestBuildNestedArchivesContainDeeperZips(t *testing.T) {
	base := t.TempDir()
	zips, err := BuildNested(base, 3, 0, rng.New(1))
	if err != nil {
		t.Fatalf("BuildNested failed: %v", err)
	}
	if len(zips) != 3 {
		t.Fatalf("created %d archives, want 3", len(zips))
	}

	// Deepest first.
	if filepath.Base(zips[0]) != "level3.zip" || filepath.Base(zips[2]) != "level1.zip" {
		t.Fatalf("unexpected archive order: %v", zips)
	}

	names := readZipNames(t, filepath.Join(base, "level1.zip"))
	want := map[string]bool{
		"level2/level3/file.txt": true,
		"level2/level3.zip":      true,
		"level2.zip":             true,
	}
	if len(names) != len(want) {
		t.Fatalf("level1.zip holds %v", names)
	}
	for _, name := range names {
		if !want[name] {
			t.Fatalf("unexpected entry %q in level1.zip", name)
		}
	}
}

func TestBuildNestedPayloadSizesMarker(t *testing.T) {
	base := t.TempDir()
	if _, err := BuildNested(base, 1, 5_000, rng.New(2)); err != nil {
		t.Fatalf("BuildNested failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(base, "level1", "file.txt"))
	if err != nil {
		t.Fatalf("stat marker: %v", err)
	}
	if info.Size() < 5_000 {
		t.Fatalf("marker is %d bytes, want at least the 5000-byte payload", info.Size())
	}
}

func TestBuildNestedRejectsZeroDepth(t *testing.T) {
	if _, err := BuildNested(t.TempDir(), 0, 0, rng.New(1)); err == nil {
		t.Fatal("expected error for depth 0")
	}
}
