// Package units converts between human-readable file sizes and exact byte
// counts. Decimal units (KB, MB, GB) are powers of 1000 and binary units
// (KiB, MiB, GiB) are powers of 1024; the two families are kept strictly
// apart so a "1 GB" request lands at 1,000,000,000 bytes, never at 2^30.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Unit is a named file-size unit.
type Unit string

const (
	Byte Unit = "B"
	KB   Unit = "KB"
	MB   Unit = "MB"
	GB   Unit = "GB"
	KiB  Unit = "KiB"
	MiB  Unit = "MiB"
	GiB  Unit = "GiB"
)

var factors = map[Unit]int64{
	Byte: 1,
	KB:   1_000,
	MB:   1_000_000,
	GB:   1_000_000_000,
	KiB:  1 << 10,
	MiB:  1 << 20,
	GiB:  1 << 30,
}

var canonical = map[string]Unit{
	"B":   Byte,
	"KB":  KB,
	"MB":  MB,
	"GB":  GB,
	"KIB": KiB,
	"MIB": MiB,
	"GIB": GiB,
}

// Names lists the accepted unit spellings in display order, for flag usage
// text.
func Names() string {
	return "B, KB, MB, GB, KiB, MiB, GiB"
}

// ParseUnit resolves a unit name such as "MB" or "GiB". Matching is
// case-insensitive; unknown names are rejected.
func ParseUnit(s string) (Unit, error) {
	u, ok := canonical[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown size unit %q (expected one of %s)", s, Names())
	}
	return u, nil
}

// Factor returns the number of bytes in one unit.
func (u Unit) Factor() int64 {
	return factors[u]
}

// Binary reports whether the unit belongs to the power-of-1024 family.
func (u Unit) Binary() bool {
	return u == KiB || u == MiB || u == GiB
}

// ToBytes converts a positive size expressed in the given unit to a byte
// count. Fractional sizes are truncated toward zero, so 4.5 MB is exactly
// 4,500,000 bytes.
func ToBytes(value float64, u Unit) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("size must be a finite number")
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive, got %g", value)
	}
	factor, ok := factors[u]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q", string(u))
	}
	b := value * float64(factor)
	if b > math.MaxInt64 {
		return 0, fmt.Errorf("size %g %s overflows the byte budget", value, string(u))
	}
	return int64(b), nil
}

// FromBytes expresses a byte count in the given unit.
func FromBytes(n int64, u Unit) float64 {
	return float64(n) / float64(factors[u])
}

// FormatBytes renders an exact byte count together with decimal and binary
// approximations, e.g. "10,000,000 bytes (10 MB / 9.5 MiB)".
func FormatBytes(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%s bytes", humanize.Comma(n))
	}
	return fmt.Sprintf("%s bytes (%s / %s)", humanize.Comma(n), humanize.Bytes(uint64(n)), humanize.IBytes(uint64(n)))
}
