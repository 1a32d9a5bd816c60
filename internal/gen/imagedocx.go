package gen

import (
	"errors"
	"fmt"
	"time"

	"file-forge/internal/budget"
	"file-forge/internal/docx"
	"file-forge/internal/rng"
)

// minViablePNGBytes is roughly the smallest stored-mode PNG the solver
// can produce: signature, IHDR, IEND and one single-pixel scanline.
const minViablePNGBytes = 100

// ImageDocxConfig shapes the image-embedding DOCX generator.
type ImageDocxConfig struct {
	Path          string
	Target        int64
	NumImages     int
	Width         int // PNG pixel width
	PageWidthCm   float64
	MarginLeftCm  float64
	MarginRightCm float64
	Cushion       int64 // reserve for ZIP central directory growth
	Verify        bool
	Seed          int64
}

// Validate rejects parameter mistakes before any file is touched.
func (c ImageDocxConfig) Validate() error {
	if c.Path == "" {
		return errors.New("output path is required")
	}
	if c.Target <= 0 {
		return fmt.Errorf("target size must be positive, got %d bytes", c.Target)
	}
	if c.NumImages < 1 {
		return fmt.Errorf("image count must be at least 1, got %d", c.NumImages)
	}
	if c.Width < 8 {
		return fmt.Errorf("image width must be at least 8 pixels, got %d", c.Width)
	}
	if c.Cushion < 0 {
		return fmt.Errorf("cushion must not be negative, got %d", c.Cushion)
	}
	if c.PageWidthCm <= c.MarginLeftCm+c.MarginRightCm {
		return fmt.Errorf("page width %.1f cm leaves no content area inside %.1f cm of margins",
			c.PageWidthCm, c.MarginLeftCm+c.MarginRightCm)
	}
	return nil
}

// RunImageDocx builds a DOCX displaying NumImages size-solved PNGs.
func RunImageDocx(cfg ImageDocxConfig) (Result, error) {
	res := Result{Path: cfg.Path}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	per, err := budget.PerUnit(cfg.Target, cfg.Cushion, cfg.NumImages)
	if err != nil {
		return res, err
	}
	if per < minViablePNGBytes+3*int64(cfg.Width) {
		return res, fmt.Errorf("%w: %d bytes per image cannot hold a %d px wide PNG",
			budget.ErrInsufficientBudget, per, cfg.Width)
	}

	start := time.Now()
	info, err := docx.WriteImageDoc(cfg.Path, docx.ImageDocOptions{
		NumImages:     cfg.NumImages,
		Target:        cfg.Target,
		PNGWidth:      cfg.Width,
		PageWidthCm:   cfg.PageWidthCm,
		MarginLeftCm:  cfg.MarginLeftCm,
		MarginRightCm: cfg.MarginRightCm,
		Cushion:       cfg.Cushion,
	}, rng.New(cfg.Seed))
	res.Path = info.Path
	res.Files = 1
	res.Bytes = info.FinalBytes
	res.Width = info.PNGWidth
	res.Height = info.PNGHeight
	res.Healed = info.Healed
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}
	if cfg.Verify {
		if err := docx.Validate(info.Path); err != nil {
			return res, fmt.Errorf("verification of %s failed: %w", info.Path, err)
		}
	}
	return res, nil
}
