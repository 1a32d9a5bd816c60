package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const samplePlan = `
name: smoke-corpus
description: small mixed corpus
out_dir: ./corpus
seed: 42
items:
  - kind: bigtext
    path: notes.txt
    size: 10
    unit: MB
  - kind: pngset
    name: wallpapers
    path: pngs
    size: 0.5
    unit: GiB
    count: 20
    width: 512
    unique: metadata
  - kind: scanbait
    path: bait
`

func TestFromYAML(t *testing.T) {
	p, err := FromYAML(samplePlan)
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}
	if p.Name != "smoke-corpus" || p.Seed != 42 || len(p.Items) != 3 {
		t.Fatalf("unexpected plan: %+v", p)
	}
	if p.Items[0].Name != "bigtext-1" {
		t.Fatalf("expected a defaulted item name, got %q", p.Items[0].Name)
	}
	if p.Items[1].Name != "wallpapers" {
		t.Fatalf("explicit item name lost: %q", p.Items[1].Name)
	}
}

func TestFromYAMLRejectsBadPlans(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"no name":      "items:\n  - kind: bigtext\n",
		"no items":     "name: x\n",
		"unknown kind": "name: x\nitems:\n  - kind: warez\n",
	}
	for label, raw := range cases {
		if _, err := FromYAML(raw); err == nil {
			t.Errorf("%s: expected an error", label)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(samplePlan), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if p.Source != path {
		t.Fatalf("expected source %q, got %q", path, p.Source)
	}
}

func TestRunReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	report := RunReport{
		Plan:       "smoke-corpus",
		Started:    time.Now().Add(-time.Minute),
		Finished:   time.Now(),
		TotalFiles: 21,
		TotalBytes: 547_000_000,
		Items: []ItemResult{
			{Name: "wallpapers", Kind: "pngset", Path: "./corpus/pngs", Files: 20, Bytes: 536_000_000, Seconds: 3.2},
			{Name: "bait", Kind: "scanbait", Path: "./corpus/bait", Files: 4, Bytes: 1234, Seconds: 0.1},
		},
	}
	if err := report.WriteReport(path); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("report file is empty")
	}
}
