package gen

import (
	"errors"
	"fmt"
	"time"

	"file-forge/internal/budget"
	"file-forge/internal/docx"
	"file-forge/internal/rng"
)

// TextDocxConfig shapes the streamed text-only DOCX generator.
type TextDocxConfig struct {
	Path       string
	Target     int64
	Margin     int64 // safety margin kept below the target
	ChunkBytes int
	ParaBytes  int
	Rich       bool // include docProps, styles and a populated rels set
	Title      string
	Verify     bool // re-open the package after writing
	Seed       int64
}

// Validate rejects parameter mistakes before any file is touched.
func (c TextDocxConfig) Validate() error {
	if c.Path == "" {
		return errors.New("output path is required")
	}
	if c.Target <= 0 {
		return fmt.Errorf("target size must be positive, got %d bytes", c.Target)
	}
	if c.Margin < 0 {
		return fmt.Errorf("safety margin must not be negative, got %d", c.Margin)
	}
	if c.Target <= c.Margin {
		return fmt.Errorf("%w: target %d bytes does not exceed the %d byte safety margin",
			budget.ErrInsufficientBudget, c.Target, c.Margin)
	}
	return nil
}

// RunTextDocx builds a text-only DOCX landing at or just under the
// target size.
func RunTextDocx(cfg TextDocxConfig) (Result, error) {
	res := Result{Path: cfg.Path}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	start := time.Now()
	info, err := docx.WriteTextDoc(cfg.Path, docx.TextDocOptions{
		Target:     cfg.Target,
		Margin:     cfg.Margin,
		ChunkBytes: cfg.ChunkBytes,
		ParaBytes:  cfg.ParaBytes,
		Rich:       cfg.Rich,
		Title:      cfg.Title,
	}, rng.New(cfg.Seed))
	res.Path = info.Path
	res.Files = 1
	res.Bytes = info.FinalBytes
	res.Paragraphs = info.Paragraphs
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}
	if cfg.Verify {
		if err := docx.ValidateParts(info.Path); err != nil {
			return res, fmt.Errorf("verification of %s failed: %w", info.Path, err)
		}
	}
	return res, nil
}
