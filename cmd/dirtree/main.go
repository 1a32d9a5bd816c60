package main

import (
	"flag"
	"fmt"
	"log"

	"file-forge/internal/gen"
)

var version = "dev"

func main() {
	var (
		dir    = flag.String("dir", "./vault", "Root directory for the folder sets")
		start  = flag.Int("start", 81000, "Starting base number for set naming")
		count  = flag.Int("count", 10, "Number of folder sets to create")
		suffix = flag.String("suffix", "", "Optional suffix appended to folder names")
		leaf   = flag.String("leaf", "EXTRACTIONS", "Constant innermost folder name")
		date   = flag.String("date", "", "Date stamp YYYYMMDD (empty = today)")
	)
	flag.Parse()

	cfg := gen.DirTreeConfig{
		Dir: *dir, Start: *start, Count: *count,
		Suffix: *suffix, Leaf: *leaf, Date: *date,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 dirtree %s\n", version)
	fmt.Printf("   📁 Root: %s\n", cfg.Dir)
	fmt.Printf("   🔢 Sets: %d starting at %d\n", cfg.Count, cfg.Start+1)

	res, err := gen.RunDirTree(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Created %d folder sets under %s\n", res.Files, cfg.Dir)
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
}
