package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirTreeConfig shapes the bulk folder-structure generator. Each set is
// three levels deep: a numbered parent, a dated child and a constant
// leaf folder.
type DirTreeConfig struct {
	Dir    string
	Start  int // base number of the first set
	Count  int
	Suffix string
	Leaf   string // constant innermost folder name
	Date   string // YYYYMMDD; empty means today
}

// Validate rejects parameter mistakes before any directory is created.
func (c DirTreeConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory is required")
	}
	if c.Count < 1 {
		return fmt.Errorf("set count must be at least 1, got %d", c.Count)
	}
	if c.Start < 0 {
		return fmt.Errorf("start number must not be negative, got %d", c.Start)
	}
	if c.Date != "" {
		if _, err := time.Parse("20060102", c.Date); err != nil {
			return fmt.Errorf("date must be YYYYMMDD, got %q", c.Date)
		}
	}
	return nil
}

// RunDirTree creates Count folder sets under Dir named
// <n><suffix>/<n>-<i>_0_NL_<date><suffix>/<leaf>, numbering from
// Start+1 upward.
func RunDirTree(cfg DirTreeConfig) (Result, error) {
	res := Result{Path: cfg.Dir}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	date := cfg.Date
	if date == "" {
		date = time.Now().Format("20060102")
	}
	leaf := cfg.Leaf
	if leaf == "" {
		leaf = "EXTRACTIONS"
	}

	start := time.Now()
	for i := 1; i <= cfg.Count; i++ {
		base := cfg.Start + i
		parent := fmt.Sprintf("%d%s", base, cfg.Suffix)
		child := fmt.Sprintf("%d-%d_0_NL_%s%s", base, i, date, cfg.Suffix)
		path := filepath.Join(cfg.Dir, parent, child, leaf)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return res, fmt.Errorf("failed to create %s: %w", path, err)
		}
		res.Files++
	}
	res.Elapsed = time.Since(start)
	return res, nil
}
