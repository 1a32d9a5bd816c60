package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"file-forge/internal/cli"
	"file-forge/internal/fs"
	"file-forge/internal/system"
)

var version = "dev"

func main() {
	var (
		root    = flag.String("root", "", "Root directory to sweep")
		name    = flag.String("name", "", "Exact file name to delete from every subfolder")
		pattern = flag.String("pattern", "", "Doublestar glob matched against relative paths")
		shred   = flag.Bool("shred", false, "Overwrite files before deleting them")
		unsafe  = flag.Bool("unsafe", false, "⚠️  Allow sweeping critical system directories")
		yes     = flag.Bool("yes", false, "Skip the confirmation prompt")
	)
	flag.Parse()

	if *root == "" {
		log.Fatalf("❌ -root is required")
	}
	if (*name == "") == (*pattern == "") {
		log.Fatalf("❌ Exactly one of -name or -pattern must be given")
	}
	if err := system.CheckRootSafety(*root, *unsafe); err != nil {
		log.Fatalf("❌ %v", err)
	}
	rootAbs, err := filepath.Abs(*root)
	if err != nil {
		log.Fatalf("❌ Failed to resolve %s: %v", *root, err)
	}
	if info, err := os.Stat(rootAbs); err != nil || !info.IsDir() {
		log.Fatalf("❌ %s is not a readable directory", rootAbs)
	}

	fmt.Printf("🔧 reap %s\n", version)
	fmt.Printf("   📁 Root: %s\n", rootAbs)
	if *name != "" {
		fmt.Printf("   🎯 Target name: %s\n", *name)
	} else {
		fmt.Printf("   🎯 Target pattern: %s\n", *pattern)
	}

	candidates, err := fs.FindFiles(rootAbs, func(path string, _ os.FileInfo) bool {
		if *name != "" {
			return filepath.Base(path) == *name
		}
		rel, err := filepath.Rel(rootAbs, path)
		if err != nil {
			return false
		}
		ok, err := doublestar.Match(*pattern, filepath.ToSlash(rel))
		return err == nil && ok
	})
	if err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	if len(candidates) == 0 {
		fmt.Println("✅ Nothing to delete.")
		return
	}

	fmt.Printf("   🔍 Found %d matching file(s)\n", len(candidates))
	verb := "delete"
	if *shred {
		verb = "shred and delete"
	}
	if !cli.Confirm(fmt.Sprintf("Really %s %d file(s) under %s?", verb, len(candidates), rootAbs), false, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	ops := fs.NewFileOps(0)
	deleted := 0
	for _, path := range candidates {
		var err error
		if *shred {
			err = ops.Shred(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			fmt.Printf("⚠️  Failed to delete %s: %v\n", path, err)
			continue
		}
		fmt.Printf("   🗑️  %s\n", path)
		deleted++
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Deleted %d of %d file(s)\n", deleted, len(candidates))
}
