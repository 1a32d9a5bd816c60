// Package probe estimates how compressible generated content is. The
// generators report this after a run so users know whether an artifact
// will survive archive round-trips at its stated size.
package probe

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Ratio returns compressed/original size for an LZ4 pass over data.
// A ratio near 1.0 means the content is effectively incompressible,
// which is what keystream-backed payloads should score.
func Ratio(data []byte) (float64, error) {
	if len(data) == 0 {
		return 1.0, nil
	}

	// Pre-allocate buffer with some extra space
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return 0, fmt.Errorf("compressibility probe failed: %w", err)
	}
	if n == 0 {
		// CompressBlock signals incompressible input with a zero length.
		return 1.0, nil
	}

	return float64(n) / float64(len(data)), nil
}

// Incompressible reports whether data compresses by less than 5%.
func Incompressible(data []byte) bool {
	r, err := Ratio(data)
	if err != nil {
		return false
	}
	return r > 0.95
}
