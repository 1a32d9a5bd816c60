package pixel

import (
	"encoding/binary"
	"testing"

	"file-forge/internal/rng"
)

func TestBMPHeaderMatchesPayload(t *testing.T) {
	data := BMP(10, 4, rng.New(8))
	if int64(len(data)) != BMPSize(10, 4) {
		t.Fatalf("file is %d bytes, computed size %d", len(data), BMPSize(10, 4))
	}
	if data[0] != 'B' || data[1] != 'M' {
		t.Fatal("missing BM signature")
	}
	if got := binary.LittleEndian.Uint32(data[2:]); int(got) != len(data) {
		t.Fatalf("header size field %d, file is %d bytes", got, len(data))
	}
	if got := binary.LittleEndian.Uint32(data[10:]); got != 54 {
		t.Fatalf("pixel offset %d, want 54", got)
	}
	if w := binary.LittleEndian.Uint32(data[18:]); w != 10 {
		t.Fatalf("width field %d, want 10", w)
	}
	if h := binary.LittleEndian.Uint32(data[22:]); h != 4 {
		t.Fatalf("height field %d, want 4", h)
	}
	if bpp := binary.LittleEndian.Uint16(data[28:]); bpp != 24 {
		t.Fatalf("bit depth %d, want 24", bpp)
	}
}

func TestRowStridePadsToFourBytes(t *testing.T) {
	cases := map[int]int{1: 4, 2: 8, 4: 12, 10: 32, 512: 1536}
	for width, want := range cases {
		if got := RowStride(width); got != want {
			t.Fatalf("RowStride(%d) = %d, want %d", width, got, want)
		}
	}
}

func TestSolveBMPHeightReachesPerFileTarget(t *testing.T) {
	// 1 GiB across 100 files at width 512: every file must reach its
	// per-file share, overshooting by less than one 1536-byte row.
	perTarget := int64(1<<30) / 100
	h := SolveBMPHeight(perTarget, 512)
	size := BMPSize(512, h)
	if size < perTarget {
		t.Fatalf("solved size %d below per-file target %d", size, perTarget)
	}
	if smaller := BMPSize(512, h-1); smaller >= perTarget {
		t.Fatalf("height %d is not minimal", h)
	}
	if over := size - perTarget; over >= 1536 {
		t.Fatalf("overshoot %d bytes, want < one row stride", over)
	}

	// Across the whole set the total stays within a few hundred KB.
	if total := size * 100; total-(1<<30) > 300_000 {
		t.Fatalf("set overshoots 1 GiB by %d bytes", total-(1<<30))
	}
}

func TestSolveSquareStaysAtOrUnderTarget(t *testing.T) {
	for _, target := range []int64{10_000, 250_000, 10_000_000} {
		side := SolveSquare(target)
		if size := BMPSize(side, side); size > target {
			t.Fatalf("side %d gives %d bytes, above the %d target", side, size, target)
		}
		if bigger := BMPSize(side+1, side+1); bigger <= target {
			t.Fatalf("side %d is not maximal for target %d", side, target)
		}
	}
}

func TestSolveBMPHeightMinimumOneRow(t *testing.T) {
	if h := SolveBMPHeight(10, 512); h != 1 {
		t.Fatalf("tiny target solved height %d, want 1", h)
	}
}

func TestBMPRowPaddingStaysZero(t *testing.T) {
	// Width 10 has a 30-byte pixel run padded to 32.
	data := BMP(10, 3, rng.New(2))
	stride := RowStride(10)
	for y := 0; y < 3; y++ {
		row := data[54+y*stride : 54+(y+1)*stride]
		if row[30] != 0 || row[31] != 0 {
			t.Fatalf("row %d padding bytes are %v", y, row[30:])
		}
	}
}
