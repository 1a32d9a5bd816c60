// Package pixel synthesizes raster images whose serialized size is a
// predictable function of their dimensions. PNGs use filter 0 and stored
// (level 0) zlib blocks so byte length depends only on width and height,
// never on pixel values; BMPs are plain 24-bit uncompressed bitmaps. That
// determinism is what lets the generators solve image dimensions for a
// byte budget up front.
package pixel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"

	"file-forge/internal/rng"
)

var pngSig = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// CommentLen is the fixed payload length of per-file tEXt markers. Keeping
// it constant makes every metadata-tagged image byte-for-byte the same
// size regardless of the marker content.
const CommentLen = 48

// tiledOverhead approximates the non-pixel bytes of a tiled PNG: the
// signature, IHDR, IEND and stored-block zlib framing.
const tiledOverhead = 150

func pngChunk(typ string, data []byte) []byte {
	out := make([]byte, 0, 12+len(data))
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, typ...)
	out = append(out, data...)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(out, crc.Sum32())
}

func pngIHDR(width, height int) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:], uint32(width))
	binary.BigEndian.PutUint32(data[4:], uint32(height))
	data[8] = 8 // bit depth
	data[9] = 2 // truecolor RGB
	return pngChunk("IHDR", data)
}

func pngIEND() []byte {
	return pngChunk("IEND", nil)
}

// deflateStored wraps raw in a zlib stream with compression disabled, so
// the output grows linearly with the input.
func deflateStored(raw []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(raw) + len(raw)/65000 + 64)
	zw, err := zlib.NewWriterLevel(&buf, zlib.NoCompression)
	if err != nil {
		panic(fmt.Sprintf("pixel: zlib level: %v", err))
	}
	zw.Write(raw)
	zw.Close()
	return buf.Bytes()
}

// PNGFromRows builds a PNG of the given dimensions by tiling period, a
// concatenation of one or more 3*width-byte scanlines, down the image.
func PNGFromRows(width, height int, period []byte) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	rowLen := 3 * width
	if len(period) == 0 || len(period)%rowLen != 0 {
		return nil, fmt.Errorf("row period of %d bytes is not a multiple of the %d-byte scanline", len(period), rowLen)
	}
	periodRows := len(period) / rowLen

	raw := make([]byte, (rowLen+1)*height)
	pos := 0
	for r := 0; r < height; r++ {
		raw[pos] = 0 // filter: none
		pos++
		off := (r % periodRows) * rowLen
		copy(raw[pos:pos+rowLen], period[off:off+rowLen])
		pos += rowLen
	}

	idat := deflateStored(raw)
	out := make([]byte, 0, len(pngSig)+25+12+len(idat)+12)
	out = append(out, pngSig...)
	out = append(out, pngIHDR(width, height)...)
	out = append(out, pngChunk("IDAT", idat)...)
	out = append(out, pngIEND()...)
	return out, nil
}

// RandomPNG builds a PNG where every scanline is fresh keystream data.
func RandomPNG(width, height int, src *rng.Source) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	return PNGFromRows(width, height, src.Bytes(3*width*height))
}

// SolidPNG builds a single-color PNG, used for small marker images.
func SolidPNG(width, height int, r, g, b byte) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", width, height)
	}
	row := make([]byte, 3*width)
	for i := 0; i < width; i++ {
		row[3*i], row[3*i+1], row[3*i+2] = r, g, b
	}
	return PNGFromRows(width, height, row)
}

// growToTarget raises height until the built image reaches perTarget
// bytes. Stored-mode output grows monotonically with height, so the step
// is sized from the current deficit and the loop always terminates.
func growToTarget(perTarget int64, width, height int, build func(h int) ([]byte, error)) (int, []byte, error) {
	png, err := build(height)
	if err != nil {
		return 0, nil, err
	}
	stride := int64(3*width + 1)
	for int64(len(png)) < perTarget {
		step := (perTarget - int64(len(png))) / stride
		if step < 1 {
			step = 1
		}
		height += int(step)
		if png, err = build(height); err != nil {
			return 0, nil, err
		}
	}
	return height, png, nil
}

// SolveHeightTiled picks a random row period of periodRows scanlines and
// the smallest height at which the tiled PNG reaches perTarget bytes.
// It returns the height, the period, and the built image.
func SolveHeightTiled(perTarget int64, width, periodRows int, src *rng.Source) (int, []byte, []byte, error) {
	if width < 1 {
		return 0, nil, nil, fmt.Errorf("image width must be positive, got %d", width)
	}
	if periodRows < 1 {
		periodRows = 1
	}
	rowLen := 3 * width
	period := src.Bytes(rowLen * periodRows)

	h := (perTarget - tiledOverhead) / int64(rowLen+1)
	if h < int64(periodRows) {
		h = int64(periodRows)
	}
	height, png, err := growToTarget(perTarget, width, int(h), func(h int) ([]byte, error) {
		return PNGFromRows(width, h, period)
	})
	if err != nil {
		return 0, nil, nil, err
	}
	return height, period, png, nil
}

// SolveHeightRandom solves height for a fully random PNG. Every probe
// rebuilds with fresh keystream rows; only the final build is returned.
func SolveHeightRandom(perTarget int64, width int, overhead int64, src *rng.Source) (int, []byte, error) {
	if width < 1 {
		return 0, nil, fmt.Errorf("image width must be positive, got %d", width)
	}
	h := (perTarget - overhead) / int64(3*width+1)
	if h < 1 {
		h = 1
	}
	return growToTarget(perTarget, width, int(h), func(h int) ([]byte, error) {
		return RandomPNG(width, h, src)
	})
}

// TextChunk builds a tEXt chunk with an arbitrary keyword and value.
func TextChunk(keyword, value string) []byte {
	data := make([]byte, 0, len(keyword)+1+len(value))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, value...)
	return pngChunk("tEXt", data)
}

// CommentChunk builds a "Comment" tEXt chunk whose payload is padded or
// trimmed to exactly CommentLen bytes.
func CommentChunk(payload []byte) []byte {
	fixed := make([]byte, CommentLen)
	n := copy(fixed, payload)
	for i := n; i < CommentLen; i++ {
		fixed[i] = ' '
	}
	data := make([]byte, 0, 8+CommentLen)
	data = append(data, "Comment"...)
	data = append(data, 0)
	data = append(data, fixed...)
	return pngChunk("tEXt", data)
}

// FileToken renders the per-file marker embedded in metadata-mode images:
// a zero-padded index plus a random tag, e.g. "FILE_0000042_UNIQ_K7KQ…".
func FileToken(index int, src *rng.Source) []byte {
	const tagChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tag := make([]byte, 20)
	for i := range tag {
		tag[i] = tagChars[src.Intn(len(tagChars))]
	}
	return []byte(fmt.Sprintf("FILE_%07d_UNIQ_%s", index, tag))
}

// InsertBeforeIEND splices a chunk between the last data chunk and the
// trailing IEND.
func InsertBeforeIEND(png, chunk []byte) []byte {
	out := make([]byte, 0, len(png)+len(chunk))
	out = append(out, png[:len(png)-12]...)
	out = append(out, chunk...)
	out = append(out, png[len(png)-12:]...)
	return out
}

// ReplaceTrailingComment swaps the comment chunk that sits immediately
// before IEND for a new one of the same serialized size, leaving the
// total image length untouched.
func ReplaceTrailingComment(png, comment []byte) ([]byte, error) {
	cut := len(png) - 12 - len(comment)
	if cut < len(pngSig) {
		return nil, fmt.Errorf("image too short to carry a %d-byte comment chunk", len(comment))
	}
	out := make([]byte, 0, len(png))
	out = append(out, png[:cut]...)
	out = append(out, comment...)
	out = append(out, png[len(png)-12:]...)
	return out, nil
}
