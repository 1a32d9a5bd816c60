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

// Unique selects how PNG set files differ from each other.
type Unique uint8

const (
	// UniqueIdentical reuses one template buffer for every file.
	UniqueIdentical Unique = iota
	// UniqueMetadata splices a per-file fixed-length tEXt marker into a
	// shared template, so content differs but sizes stay identical.
	UniqueMetadata
	// UniquePixels tiles one per-file random scanline down the image.
	UniquePixels
	// UniqueStrong tiles several per-file random scanlines down the
	// image, making neighbouring files differ across most of the body.
	UniqueStrong
)

// String returns the flag spelling of the mode.
func (u Unique) String() string {
	switch u {
	case UniqueIdentical:
		return "identical"
	case UniqueMetadata:
		return "metadata"
	case UniquePixels:
		return "pixels"
	case UniqueStrong:
		return "strong"
	default:
		return fmt.Sprintf("unique(%d)", uint8(u))
	}
}

// ParseUnique resolves a uniqueness mode name.
func ParseUnique(s string) (Unique, error) {
	switch s {
	case "identical":
		return UniqueIdentical, nil
	case "metadata", "":
		return UniqueMetadata, nil
	case "pixels":
		return UniquePixels, nil
	case "strong":
		return UniqueStrong, nil
	default:
		return 0, fmt.Errorf("unknown uniqueness mode %q (expected identical, metadata, pixels or strong)", s)
	}
}

// PNGSetConfig shapes the PNG set generator.
type PNGSetConfig struct {
	Dir       string
	Target    int64 // combined size of all files
	Count     int
	Width     int
	Unique    Unique
	Rows      int // unique scanlines per file in strong mode
	MetaKey   string
	MetaValue string // with MetaKey, adds a marker image carrying this tEXt pair
	Seed      int64
	Jobs      int
	Force     bool
}

// Validate rejects parameter mistakes before any file is touched.
func (c PNGSetConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory is required")
	}
	if c.Target <= 0 {
		return fmt.Errorf("target size must be positive, got %d bytes", c.Target)
	}
	if c.Count < 1 {
		return fmt.Errorf("file count must be at least 1, got %d", c.Count)
	}
	if c.Width < 8 {
		return fmt.Errorf("image width must be at least 8 pixels, got %d", c.Width)
	}
	if c.Unique == UniqueStrong && c.Rows < 1 {
		return fmt.Errorf("strong mode needs at least 1 unique row, got %d", c.Rows)
	}
	if c.MetaValue != "" && c.MetaKey == "" {
		return errors.New("meta value given without a meta key")
	}
	return nil
}

// RunPNGSet writes Count PNGs into Dir whose sizes sum to at most the
// target. File one is the verified sample; later files are rebuilt from
// per-index derived seeds and any that stray from the sample size are
// replaced by it, so the set stays uniform no matter what the content
// does.
func RunPNGSet(cfg PNGSetConfig) (Result, error) {
	res := Result{Path: cfg.Dir, Width: cfg.Width}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	per, err := budget.PerUnit(cfg.Target, 0, cfg.Count)
	if err != nil {
		return res, err
	}
	if per < minViablePNGBytes+3*int64(cfg.Width) {
		return res, fmt.Errorf("%w: %d bytes per file cannot hold a %d px wide PNG",
			budget.ErrInsufficientBudget, per, cfg.Width)
	}
	if err := prepareDir(cfg.Dir, cfg.Force); err != nil {
		return res, err
	}

	start := time.Now()
	src := rng.New(cfg.Seed)

	// The sample defines the uniform per-file geometry and byte size.
	var (
		sample []byte
		height int
		build  func(i int) ([]byte, error)
	)
	switch cfg.Unique {
	case UniqueIdentical:
		height, sample, err = pixel.SolveHeightRandom(per, cfg.Width, minViablePNGBytes, src)
	case UniqueMetadata:
		markerLen := int64(len(pixel.CommentChunk(nil)))
		var base []byte
		height, base, err = pixel.SolveHeightRandom(per-markerLen, cfg.Width, minViablePNGBytes, src)
		if err == nil {
			sample = pixel.InsertBeforeIEND(base, pixel.CommentChunk(pixel.FileToken(1, src.Derive(1))))
			build = func(i int) ([]byte, error) {
				return pixel.InsertBeforeIEND(base, pixel.CommentChunk(pixel.FileToken(i, src.Derive(i)))), nil
			}
		}
	case UniquePixels, UniqueStrong:
		rows := 1
		if cfg.Unique == UniqueStrong {
			rows = cfg.Rows
		}
		height, _, sample, err = pixel.SolveHeightTiled(per, cfg.Width, rows, src)
		if err == nil {
			h := height
			build = func(i int) ([]byte, error) {
				period := src.Derive(i).Bytes(3 * cfg.Width * rows)
				return pixel.PNGFromRows(cfg.Width, h, period)
			}
		}
	}
	if err != nil {
		return res, fmt.Errorf("failed to solve image geometry: %w", err)
	}
	res.Height = height
	res.Ratio = probeRatio(sample)
	expect := len(sample)

	var written, healed int64
	err = forEach(cfg.Jobs, cfg.Count, func(i int) error {
		data := sample
		if build != nil && i > 1 {
			built, buildErr := build(i)
			if buildErr != nil {
				return fmt.Errorf("failed to build image %d: %w", i, buildErr)
			}
			if len(built) == expect {
				data = built
			} else {
				atomic.AddInt64(&healed, 1)
			}
		}
		name := filepath.Join(cfg.Dir, fmt.Sprintf("img_%05d.png", i))
		if writeErr := os.WriteFile(name, data, 0o644); writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", name, writeErr)
		}
		atomic.AddInt64(&written, int64(len(data)))
		return nil
	})
	res.Files = cfg.Count
	res.Bytes = atomic.LoadInt64(&written)
	res.Healed = int(atomic.LoadInt64(&healed))
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}

	if cfg.MetaKey != "" {
		marker, markerErr := stegoMarker(cfg.MetaKey, cfg.MetaValue, src)
		if markerErr != nil {
			return res, markerErr
		}
		name := filepath.Join(cfg.Dir, "hidden_message.png")
		if writeErr := os.WriteFile(name, marker, 0o644); writeErr != nil {
			return res, fmt.Errorf("failed to write %s: %w", name, writeErr)
		}
		res.Files++
		res.Bytes += int64(len(marker))
		res.Elapsed = time.Since(start)
	}
	return res, nil
}

// stegoMarker builds a small solid-color PNG that hides a key/value
// tEXt pair, the metadata bait scanners are expected to dig out.
func stegoMarker(key, value string, src *rng.Source) ([]byte, error) {
	rgb := src.Bytes(3)
	png, err := pixel.SolidPNG(200, 200, rgb[0], rgb[1], rgb[2])
	if err != nil {
		return nil, fmt.Errorf("failed to build marker image: %w", err)
	}
	return pixel.InsertBeforeIEND(png, pixel.TextChunk(key, value)), nil
}
