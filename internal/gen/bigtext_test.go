package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunBigTextExactSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	res, err := RunBigText(BigTextConfig{Path: path, Target: 10_000, LineWidth: 75, Seed: 7})
	if err != nil {
		t.Fatalf("RunBigText failed: %v", err)
	}
	if res.Bytes != 10_000 {
		t.Fatalf("expected exactly 10000 bytes, got %d", res.Bytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if int64(len(data)) != res.Bytes {
		t.Fatalf("result reports %d bytes but file holds %d", res.Bytes, len(data))
	}
	if data[75] != '\n' {
		t.Fatalf("expected newline after a 75-character line, got %q", data[75])
	}
}

func TestRunBigTextDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	for _, cfg := range []BigTextConfig{
		{Path: a, Target: 5_000, Words: true, Seed: 99},
		{Path: b, Target: 5_000, Words: true, Seed: 99},
	} {
		if _, err := RunBigText(cfg); err != nil {
			t.Fatalf("RunBigText failed: %v", err)
		}
	}
	dataA, _ := os.ReadFile(a)
	dataB, _ := os.ReadFile(b)
	if !bytes.Equal(dataA, dataB) {
		t.Fatal("same seed produced different output")
	}
}

func TestRunBigTextRejectsBadParams(t *testing.T) {
	cases := []BigTextConfig{
		{Path: "", Target: 100, LineWidth: 75},
		{Path: "x.txt", Target: 0, LineWidth: 75},
		{Path: "x.txt", Target: 100, LineWidth: 0},
	}
	for i, cfg := range cases {
		if _, err := RunBigText(cfg); err == nil {
			t.Errorf("case %d: expected a validation error", i)
		}
	}
}
