package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"file-forge/internal/cli"
	"file-forge/internal/fs"
)

var version = "dev"

func main() {
	var (
		dir      = flag.String("dir", ".", "Directory to scan")
		out      = flag.String("out", "file_list.txt", "Base name of the output file (timestamp is prefixed)")
		include  = flag.String("include", "", "Comma-separated glob patterns to include (doublestar)")
		exclude  = flag.String("exclude", "", "Comma-separated glob patterns to exclude (doublestar)")
		prefix   = flag.String("prefix", "", "Only include relative paths starting with this string")
		contains = flag.String("contains", "", "Only include relative paths containing this substring")
		digest   = flag.Bool("digest", false, "Prepend a BLAKE2b-256 digest column to each line")
	)
	flag.Parse()

	root, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatalf("❌ Failed to resolve %s: %v", *dir, err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		log.Fatalf("❌ %s is not a readable directory", root)
	}
	includes := splitGlobs(*include)
	excludes := splitGlobs(*exclude)

	outPath := cli.Timestamp(time.Now()) + "_" + filepath.Base(*out)

	fmt.Printf("🔧 inventory %s\n", version)
	fmt.Printf("   📁 Scanning: %s\n", root)
	fmt.Printf("   📝 Output: %s\n", outPath)

	matches, err := fs.FindFiles(root, func(path string, _ os.FileInfo) bool {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		return matchRel(filepath.ToSlash(rel), includes, excludes, *prefix, *contains)
	})
	if err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("❌ Failed to create %s: %v", outPath, err)
	}
	defer outFile.Close()
	writer := bufio.NewWriter(outFile)
	ops := fs.NewFileOps(0)

	count := 0
	for _, path := range matches {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		line := filepath.ToSlash(rel)
		if *digest {
			sum, err := ops.HashFile(path)
			if err != nil {
				fmt.Printf("⚠️  Skipping %s: %v\n", line, err)
				continue
			}
			line = sum + "  " + line
		}
		if _, err := writer.WriteString(line + "\n"); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", outPath, err)
		}
		count++
	}
	if err := writer.Flush(); err != nil {
		log.Fatalf("❌ Failed to flush %s: %v", outPath, err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Listed %d file(s) in %s\n", count, outPath)
}

func splitGlobs(raw string) []string {
	if raw == "" {
		return nil
	}
	var globs []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			globs = append(globs, g)
		}
	}
	return globs
}

func matchRel(rel string, includes, excludes []string, prefix, contains string) bool {
	if prefix != "" && !strings.HasPrefix(rel, prefix) {
		return false
	}
	if contains != "" && !strings.Contains(rel, contains) {
		return false
	}
	for _, g := range excludes {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return false
		}
	}
	if len(includes) == 0 {
		return true
	}
	for _, g := range includes {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
