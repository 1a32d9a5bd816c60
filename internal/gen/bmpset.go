package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"file-forge/internal/budget"
	"file-forge/internal/pixel"
	"file-forge/internal/rng"
)

// BMPSetConfig shapes the BMP set generator.
type BMPSetConfig struct {
	Dir    string
	Target int64 // combined size of all files
	Count  int
	Width  int // 0 solves a square; otherwise height is solved for Width
	Seed   int64
	Jobs   int
	Force  bool
}

// Validate rejects parameter mistakes before any file is touched.
func (c BMPSetConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory is required")
	}
	if c.Target <= 0 {
		return fmt.Errorf("target size must be positive, got %d bytes", c.Target)
	}
	if c.Count < 1 {
		return fmt.Errorf("file count must be at least 1, got %d", c.Count)
	}
	if c.Width != 0 && c.Width < 8 {
		return fmt.Errorf("image width must be at least 8 pixels (or 0 for square), got %d", c.Width)
	}
	return nil
}

// RunBMPSet writes Count uncompressed 24-bit BMPs into Dir. Every file
// has the same solved geometry, so sizes are identical by construction;
// pixel content comes from per-index derived seeds.
func RunBMPSet(cfg BMPSetConfig) (Result, error) {
	res := Result{Path: cfg.Dir}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	per, err := budget.PerUnit(cfg.Target, 0, cfg.Count)
	if err != nil {
		return res, err
	}

	var width, height int
	if cfg.Width > 0 {
		width = cfg.Width
		height = pixel.SolveBMPHeight(per, width)
	} else {
		width = pixel.SolveSquare(per)
		height = width
	}
	if per < pixel.BMPSize(width, 1) {
		return res, fmt.Errorf("%w: %d bytes per file cannot hold a single %d px wide row",
			budget.ErrInsufficientBudget, per, width)
	}
	if err := prepareDir(cfg.Dir, cfg.Force); err != nil {
		return res, err
	}

	start := time.Now()
	src := rng.New(cfg.Seed)

	probeRows := 8
	if probeRows > height {
		probeRows = height
	}
	res.Ratio = probeRatio(pixel.BMP(width, probeRows, src.Derive(0)))

	var written int64
	err = forEach(cfg.Jobs, cfg.Count, func(i int) error {
		data := pixel.BMP(width, height, src.Derive(i))
		name := filepath.Join(cfg.Dir, fmt.Sprintf("random_%05d.bmp", i))
		if writeErr := os.WriteFile(name, data, 0o644); writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", name, writeErr)
		}
		atomic.AddInt64(&written, int64(len(data)))
		return nil
	})
	res.Files = cfg.Count
	res.Bytes = atomic.LoadInt64(&written)
	res.Width = width
	res.Height = height
	res.Elapsed = time.Since(start)
	return res, err
}
