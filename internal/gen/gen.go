// Package gen contains the artifact generators behind each command.
// Every generator follows the same contract: a Config struct whose
// Validate method rejects bad parameters before any I/O happens, and a
// Run function that writes artifacts and reports a Result. Commands are
// thin flag wrappers over these entry points, and the forge batch
// runner drives the exact same functions.
package gen

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"file-forge/internal/fs"
	"file-forge/internal/probe"
)

// Result reports what a generator run produced. Generators fill only
// the fields that apply to their artifact family.
type Result struct {
	Path       string
	Files      int
	Bytes      int64
	Paragraphs int64
	Width      int
	Height     int
	Healed     int
	Zips       []string
	Ratio      float64 // LZ4 compressibility of a payload sample, 0 when not probed
	Elapsed    time.Duration
}

// probeRatio runs the LZ4 probe over a payload sample, swallowing probe
// errors since the figure is purely informational.
func probeRatio(sample []byte) float64 {
	ratio, err := probe.Ratio(sample)
	if err != nil {
		return 0
	}
	return ratio
}

// forEach runs fn for indexes 1 through count across workers
// goroutines. Indexes carry all per-file state (derived seeds, file
// names), so output is identical regardless of schedule. After the
// first failure no new work starts and the first error is returned.
func forEach(workers, count int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}
	if workers == 1 {
		for i := 1; i <= count; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var failed atomic.Bool
	var once sync.Once
	var firstErr error
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if failed.Load() {
					continue
				}
				if err := fn(i); err != nil {
					once.Do(func() { firstErr = err })
					failed.Store(true)
				}
			}
		}()
	}
	for i := 1; i <= count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return firstErr
}

// prepareDir readies an output directory. Without force an existing
// non-empty directory is rejected so a run never mixes old and new
// artifacts by accident.
func prepareDir(dir string, force bool) error {
	if force {
		return os.MkdirAll(dir, 0o755)
	}
	return fs.EnsureEmptyDir(dir)
}
