package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"file-forge/internal/rng"
	"file-forge/internal/text"
)

// BuildNested creates depth nested level directories under baseDir with a
// marker text file at the bottom, then zips each level from the deepest
// up. Because every archive lands next to the directory it captures,
// shallower archives contain both the deeper directory tree and the
// deeper archives, which is the recursion shape archive scanners trip
// over. Returned paths are ordered deepest first.
//
// payload adds that many bytes of word filler to the marker file so the
// innermost content has a controllable size.
func BuildNested(baseDir string, depth int, payload int64, src *rng.Source) ([]string, error) {
	if depth < 1 {
		return nil, fmt.Errorf("depth must be at least 1, got %d", depth)
	}

	current := baseDir
	for i := 1; i <= depth; i++ {
		current = filepath.Join(current, fmt.Sprintf("level%d", i))
		if err := os.MkdirAll(current, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", current, err)
		}
	}

	marker := filepath.Join(current, "file.txt")
	content := fmt.Sprintf("This is a text file at depth %d\nPath: %s\n", depth, marker)
	if payload > 0 {
		content += string(text.ExactBytes(int(payload), src))
	}
	if err := os.WriteFile(marker, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", marker, err)
	}

	var zips []string
	for i := depth; i >= 1; i-- {
		dir := levelPath(baseDir, i)
		zipPath, err := ZipDir(dir)
		if err != nil {
			return nil, err
		}
		zips = append(zips, zipPath)
	}
	return zips, nil
}

func levelPath(baseDir string, depth int) string {
	dir := baseDir
	for i := 1; i <= depth; i++ {
		dir = filepath.Join(dir, fmt.Sprintf("level%d", i))
	}
	return dir
}
