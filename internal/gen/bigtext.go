package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"file-forge/internal/fs"
	"file-forge/internal/rng"
	"file-forge/internal/text"
)

// BigTextConfig shapes the exact-size text file generator.
type BigTextConfig struct {
	Path      string
	Target    int64 // exact output size in bytes
	LineWidth int   // characters per line in line mode
	Words     bool  // word stream instead of fixed-width lines
	Seed      int64
}

// Validate rejects parameter mistakes before any file is touched.
func (c BigTextConfig) Validate() error {
	if c.Path == "" {
		return errors.New("output path is required")
	}
	if c.Target <= 0 {
		return fmt.Errorf("target size must be positive, got %d bytes", c.Target)
	}
	if !c.Words && c.LineWidth < 1 {
		return fmt.Errorf("line width must be at least 1, got %d", c.LineWidth)
	}
	return nil
}

// RunBigText streams a text file of exactly cfg.Target bytes to disk.
func RunBigText(cfg BigTextConfig) (Result, error) {
	res := Result{Path: cfg.Path}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	start := time.Now()
	src := rng.New(cfg.Seed)

	sampleLen := int64(64 * 1024)
	if sampleLen > cfg.Target {
		sampleLen = cfg.Target
	}
	res.Ratio = probeRatio(textSample(int(sampleLen), cfg, src))

	ops := fs.NewFileOps(0)
	written, err := ops.WriteStream(cfg.Path, func(w io.Writer) error {
		var fillErr error
		if cfg.Words {
			_, fillErr = text.WriteExact(w, cfg.Target, src)
		} else {
			_, fillErr = text.WriteLines(w, cfg.Target, cfg.LineWidth, src)
		}
		return fillErr
	})
	res.Files = 1
	res.Bytes = written
	res.Elapsed = time.Since(start)
	return res, err
}

// textSample renders a detached sample of the configured text shape for
// the compressibility probe, leaving the main stream untouched.
func textSample(n int, cfg BigTextConfig, src *rng.Source) []byte {
	child := src.Derive(0)
	if cfg.Words {
		return text.ExactBytes(n, child)
	}
	var buf bytes.Buffer
	buf.Grow(n)
	_, _ = text.WriteLines(&buf, int64(n), cfg.LineWidth, child)
	return buf.Bytes()
}
