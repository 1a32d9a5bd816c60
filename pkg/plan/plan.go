// Package plan defines the YAML batch format the forge command executes:
// a named sequence of generator runs with shared defaults, plus an
// optional machine-readable report of what a batch produced.
package plan

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddedPlanYAML holds build-time injected YAML. Empty when not provided.
// Set via: -ldflags "-X 'file-forge/pkg/plan.EmbeddedPlanYAML=...'"
var EmbeddedPlanYAML string

// Kinds lists the generator kinds a plan item may name.
var Kinds = map[string]bool{
	"bigtext":   true,
	"bigdocx":   true,
	"imagedocx": true,
	"pngset":    true,
	"bmpset":    true,
	"zipnest":   true,
	"dirtree":   true,
	"scanbait":  true,
}

// Item describes one generator run inside a batch plan. Fields that do
// not apply to an item's kind are simply ignored by that generator.
type Item struct {
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Size    float64  `yaml:"size"`
	Unit    string   `yaml:"unit"`
	Count   int      `yaml:"count"`
	Width   int      `yaml:"width"`
	Mode    string   `yaml:"mode"`
	Unique  string   `yaml:"unique"`
	Rows    int      `yaml:"rows"`
	Depth   int      `yaml:"depth"`
	Payload int64    `yaml:"payload_bytes"`
	Start   int      `yaml:"start"`
	Suffix  string   `yaml:"suffix"`
	Leaf    string   `yaml:"leaf"`
	Rich    bool     `yaml:"rich"`
	Kinds   []string `yaml:"kinds"`
	Seed    int64    `yaml:"seed"`
	Jobs    int      `yaml:"jobs"`
}

// ReportSpec controls whether a batch writes a YAML run report.
type ReportSpec struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Plan is a batch of generator runs executed in order.
type Plan struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	OutDir      string     `yaml:"out_dir"`
	Seed        int64      `yaml:"seed"`
	Report      ReportSpec `yaml:"report"`
	Items       []Item     `yaml:"items"`

	Source string `yaml:"-"`
}

// FromYAML parses a raw YAML plan definition.
func FromYAML(data string) (*Plan, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, errors.New("plan YAML is empty")
	}
	var p Plan
	if err := yaml.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan YAML: %w", err)
	}
	if p.Name == "" {
		return nil, errors.New("plan missing required field 'name'")
	}
	if len(p.Items) == 0 {
		return nil, errors.New("plan has no items")
	}
	for i := range p.Items {
		item := &p.Items[i]
		if !Kinds[item.Kind] {
			return nil, fmt.Errorf("item %d has unknown kind %q", i+1, item.Kind)
		}
		if item.Name == "" {
			item.Name = fmt.Sprintf("%s-%d", item.Kind, i+1)
		}
	}
	return &p, nil
}

// LoadFile loads a plan from a YAML file path.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}
	p, err := FromYAML(string(data))
	if err != nil {
		return nil, err
	}
	p.Source = path
	return p, nil
}

// LoadEmbedded parses the embedded plan definition if present.
func LoadEmbedded() (*Plan, error) {
	if !HasEmbedded() {
		return nil, errors.New("no embedded plan available")
	}
	raw := strings.TrimSpace(EmbeddedPlanYAML)
	p, err := FromYAML(raw)
	if err == nil {
		p.Source = "embedded"
		return p, nil
	}

	// Allow base64 encoded payloads for ease of ldflags embedding
	decoded, decodeErr := base64.StdEncoding.DecodeString(raw)
	if decodeErr != nil {
		return nil, err
	}
	p, err = FromYAML(string(decoded))
	if err != nil {
		return nil, err
	}
	p.Source = "embedded"
	return p, nil
}

// HasEmbedded reports whether a build-time plan is embedded.
func HasEmbedded() bool {
	return strings.TrimSpace(EmbeddedPlanYAML) != ""
}
