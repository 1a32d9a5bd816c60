package units

import (
	"strings"
	"testing"
)

func TestParseUnit(t *testing.T) {
	cases := map[string]Unit{
		"B":    Byte,
		"kb":   KB,
		"MB":   MB,
		"gb":   GB,
		"KiB":  KiB,
		"mib":  MiB,
		"GIB":  GiB,
		" GB ": GB,
	}
	for in, want := range cases {
		got, err := ParseUnit(in)
		if err != nil {
			t.Fatalf("ParseUnit(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseUnit(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseUnit("GBs"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestDecimalAndBinaryFamiliesStayApart(t *testing.T) {
	gb, err := ToBytes(1, GB)
	if err != nil {
		t.Fatalf("ToBytes(1 GB) failed: %v", err)
	}
	gib, err := ToBytes(1, GiB)
	if err != nil {
		t.Fatalf("ToBytes(1 GiB) failed: %v", err)
	}
	if gb != 1_000_000_000 {
		t.Fatalf("1 GB = %d bytes, want 1000000000", gb)
	}
	if gib != 1<<30 {
		t.Fatalf("1 GiB = %d bytes, want %d", gib, int64(1)<<30)
	}
	if gb == gib {
		t.Fatal("decimal and binary gigabytes must differ")
	}
}

func TestToBytesTruncatesFractions(t *testing.T) {
	n, err := ToBytes(4.5, MB)
	if err != nil {
		t.Fatalf("ToBytes(4.5 MB) failed: %v", err)
	}
	if n != 4_500_000 {
		t.Fatalf("4.5 MB = %d bytes, want 4500000", n)
	}
}

func TestToBytesRejectsNonPositive(t *testing.T) {
	for _, v := range []float64{0, -1, -0.5} {
		if _, err := ToBytes(v, MB); err == nil {
			t.Fatalf("expected error for size %g", v)
		}
	}
}

func TestFromBytes(t *testing.T) {
	if got := FromBytes(1_500_000, MB); got != 1.5 {
		t.Fatalf("FromBytes(1500000, MB) = %g, want 1.5", got)
	}
	if got := FromBytes(1<<30, GiB); got != 1.0 {
		t.Fatalf("FromBytes(2^30, GiB) = %g, want 1", got)
	}
}

func TestFormatBytesGroupsDigits(t *testing.T) {
	s := FormatBytes(10_000_000)
	if !strings.Contains(s, "10,000,000") {
		t.Fatalf("FormatBytes missing grouped count: %q", s)
	}
	if !strings.Contains(s, "MB") || !strings.Contains(s, "MiB") {
		t.Fatalf("FormatBytes missing unit approximations: %q", s)
	}
}
