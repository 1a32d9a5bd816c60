package plan

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ItemResult is one executed plan item in a run report.
type ItemResult struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"`
	Path    string  `yaml:"path"`
	Files   int     `yaml:"files"`
	Bytes   int64   `yaml:"bytes"`
	Healed  int     `yaml:"healed,omitempty"`
	Seconds float64 `yaml:"seconds"`
	Error   string  `yaml:"error,omitempty"`
}

// RunReport summarizes a whole batch execution.
type RunReport struct {
	Plan       string       `yaml:"plan"`
	Source     string       `yaml:"source,omitempty"`
	Started    time.Time    `yaml:"started"`
	Finished   time.Time    `yaml:"finished"`
	TotalFiles int          `yaml:"total_files"`
	TotalBytes int64        `yaml:"total_bytes"`
	Items      []ItemResult `yaml:"items"`
}

// WriteReport renders the report as YAML at path.
func (r *RunReport) WriteReport(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to render run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run report %s: %w", path, err)
	}
	return nil
}
