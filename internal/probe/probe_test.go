package probe

import (
	"bytes"
	"testing"

	"file-forge/internal/rng"
)

func TestRatioOnRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("AAAA"), 4096)
	r, err := Ratio(data)
	if err != nil {
		t.Fatalf("ratio failed: %v", err)
	}
	if r > 0.1 {
		t.Fatalf("repetitive data scored ratio %.3f, expected heavy compression", r)
	}
	if Incompressible(data) {
		t.Fatal("repetitive data flagged incompressible")
	}
}

func TestRatioOnKeystreamData(t *testing.T) {
	data := rng.New(42).Bytes(64 * 1024)
	r, err := Ratio(data)
	if err != nil {
		t.Fatalf("ratio failed: %v", err)
	}
	if r < 0.95 {
		t.Fatalf("keystream data scored ratio %.3f, expected near 1.0", r)
	}
	if !Incompressible(data) {
		t.Fatal("keystream data not flagged incompressible")
	}
}

func TestRatioOnEmptyInput(t *testing.T) {
	r, err := Ratio(nil)
	if err != nil {
		t.Fatalf("ratio failed: %v", err)
	}
	if r != 1.0 {
		t.Fatalf("empty input ratio = %.3f, want 1.0", r)
	}
}
