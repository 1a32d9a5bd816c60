package gen

import (
	"bytes"
	"encoding/binary"
	"testing"

	"file-forge/internal/pixel"
)

func TestRunBMPSetFixedWidthRowMath(t *testing.T) {
	dir := t.TempDir()
	const target = 2_000_000
	const count = 4
	res, err := RunBMPSet(BMPSetConfig{Dir: dir, Target: target, Count: count, Width: 512, Seed: 9, Force: true})
	if err != nil {
		t.Fatalf("RunBMPSet failed: %v", err)
	}
	if res.Width != 512 {
		t.Fatalf("expected width 512, got %d", res.Width)
	}
	// 512 px at 24 bpp gives a 1536-byte stride; the solved height must
	// lift each file to at least its share of the target.
	perTarget := int64(target / count)
	if got := 54 + int64(res.Height)*1536; got < perTarget {
		t.Fatalf("54 + %d*1536 = %d, below the %d byte per-file target", res.Height, got, perTarget)
	}
	files := readSet(t, dir, "random_%05d.bmp", count)
	for i, data := range files {
		if int64(len(data)) != pixel.BMPSize(res.Width, res.Height) {
			t.Fatalf("file %d is %d bytes, expected %d", i+1, len(data), pixel.BMPSize(res.Width, res.Height))
		}
		if data[0] != 'B' || data[1] != 'M' {
			t.Fatalf("file %d missing BM signature", i+1)
		}
		if declared := binary.LittleEndian.Uint32(data[2:]); int(declared) != len(data) {
			t.Fatalf("file %d declares %d bytes but holds %d", i+1, declared, len(data))
		}
	}
	// Derived per-index seeds must give every file distinct pixels.
	if bytes.Equal(files[0], files[1]) {
		t.Fatal("two files share identical pixel data")
	}
}

func TestRunBMPSetSquareStaysUnderTarget(t *testing.T) {
	dir := t.TempDir()
	res, err := RunBMPSet(BMPSetConfig{Dir: dir, Target: 1_000_000, Count: 3, Seed: 2, Force: true})
	if err != nil {
		t.Fatalf("RunBMPSet failed: %v", err)
	}
	if res.Width != res.Height {
		t.Fatalf("expected square geometry, got %dx%d", res.Width, res.Height)
	}
	if res.Bytes > 1_000_000 {
		t.Fatalf("square set size %d exceeds the target", res.Bytes)
	}
}

func TestParseUnique(t *testing.T) {
	for name, want := range map[string]Unique{
		"identical": UniqueIdentical,
		"metadata":  UniqueMetadata,
		"pixels":    UniquePixels,
		"strong":    UniqueStrong,
		"":          UniqueMetadata,
	} {
		got, err := ParseUnique(name)
		if err != nil {
			t.Fatalf("ParseUnique(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseUnique(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseUnique("bogus"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
