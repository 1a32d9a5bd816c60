package gen

import (
	"errors"
	"fmt"
	"time"

	"file-forge/internal/archive"
	"file-forge/internal/fs"
	"file-forge/internal/rng"
)

// ZipNestConfig shapes the nested-archive generator.
type ZipNestConfig struct {
	Dir     string
	Depth   int
	Payload int64 // filler bytes added to the innermost marker file
	Seed    int64
	Force   bool
}

// Validate rejects parameter mistakes before any file is touched.
func (c ZipNestConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("output directory is required")
	}
	if c.Depth < 1 {
		return fmt.Errorf("nesting depth must be at least 1, got %d", c.Depth)
	}
	if c.Payload < 0 {
		return fmt.Errorf("payload size must not be negative, got %d", c.Payload)
	}
	return nil
}

// RunZipNest builds the nested-archive recursion bait: depth levels of
// directories zipped deepest-first so each shallower archive contains
// all the deeper ones.
func RunZipNest(cfg ZipNestConfig) (Result, error) {
	res := Result{Path: cfg.Dir}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if err := prepareDir(cfg.Dir, cfg.Force); err != nil {
		return res, err
	}

	start := time.Now()
	zips, err := archive.BuildNested(cfg.Dir, cfg.Depth, cfg.Payload, rng.New(cfg.Seed))
	res.Zips = zips
	res.Files = len(zips)
	for _, zipPath := range zips {
		size, sizeErr := fs.GetFileSize(zipPath)
		if sizeErr == nil {
			res.Bytes += size
		}
	}
	res.Elapsed = time.Since(start)
	return res, err
}
