package pixel

import (
	"encoding/binary"
	"math"

	"file-forge/internal/rng"
)

// bmpHeaderSize covers the BITMAPFILEHEADER (14) plus BITMAPINFOHEADER (40).
const bmpHeaderSize = 54

// RowStride returns the padded byte width of one 24-bit BMP scanline.
func RowStride(width int) int {
	return (width*3 + 3) &^ 3
}

// BMPSize returns the exact file size of a 24-bit BMP with the given
// dimensions.
func BMPSize(width, height int) int64 {
	return bmpHeaderSize + int64(RowStride(width))*int64(height)
}

// SolveBMPHeight returns the smallest height whose BMP file size reaches
// perTarget bytes at the given width, with a minimum of one row.
func SolveBMPHeight(perTarget int64, width int) int {
	stride := int64(RowStride(width))
	pixels := perTarget - bmpHeaderSize
	if pixels <= 0 {
		return 1
	}
	h := pixels / stride
	if pixels%stride != 0 {
		h++
	}
	if h < 1 {
		h = 1
	}
	return int(h)
}

// SolveSquare returns the side of the largest square BMP whose file size
// stays at or under perTarget bytes. Padding makes the true stride a
// touch wider than 3 bytes per pixel, so the estimate is walked down
// until it fits.
func SolveSquare(perTarget int64) int {
	pixels := (perTarget - bmpHeaderSize) / 3
	if pixels < 1 {
		return 1
	}
	side := int(math.Sqrt(float64(pixels)))
	for side > 1 && BMPSize(side, side) > perTarget {
		side--
	}
	if side < 1 {
		side = 1
	}
	return side
}

// BMP builds a 24-bit uncompressed bitmap filled with keystream pixels.
// Rows are stored bottom-up and padded to four bytes, per the format.
func BMP(width, height int, src *rng.Source) []byte {
	stride := RowStride(width)
	pixelBytes := stride * height
	out := make([]byte, bmpHeaderSize+pixelBytes)

	// BITMAPFILEHEADER
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:], uint32(bmpHeaderSize+pixelBytes))
	binary.LittleEndian.PutUint32(out[10:], bmpHeaderSize)

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(out[14:], 40)
	binary.LittleEndian.PutUint32(out[18:], uint32(width))
	binary.LittleEndian.PutUint32(out[22:], uint32(height))
	binary.LittleEndian.PutUint16(out[26:], 1)  // planes
	binary.LittleEndian.PutUint16(out[28:], 24) // bits per pixel
	binary.LittleEndian.PutUint32(out[30:], 0)  // BI_RGB, no compression
	binary.LittleEndian.PutUint32(out[34:], uint32(pixelBytes))
	binary.LittleEndian.PutUint32(out[38:], 2835) // 72 DPI
	binary.LittleEndian.PutUint32(out[42:], 2835)

	rowData := width * 3
	for y := 0; y < height; y++ {
		row := out[bmpHeaderSize+y*stride:]
		src.Fill(row[:rowData])
		// padding bytes stay zero
	}
	return out
}
