package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"file-forge/internal/gen"
	"file-forge/pkg/units"
)

var version = "dev"

func main() {
	var (
		dir     = flag.String("dir", "./zip_nest", "Output directory")
		depth   = flag.Int("depth", 5, "Nesting depth (level1..levelN)")
		payload = flag.Int64("payload", 0, "Filler bytes added to the innermost marker file")
		seed    = flag.Int64("seed", 0, "Random seed (0 = fresh entropy)")
		force   = flag.Bool("force", false, "Allow a non-empty output directory")
	)
	flag.Parse()

	cfg := gen.ZipNestConfig{Dir: *dir, Depth: *depth, Payload: *payload, Seed: *seed, Force: *force}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 zipnest %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Dir)
	fmt.Printf("   🪆 Depth: %d\n", cfg.Depth)

	fmt.Println("🚀 Generating...")
	res, err := gen.RunZipNest(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Archives: %d, total %s\n", res.Files, units.FormatBytes(res.Bytes))
	for _, zipPath := range res.Zips {
		fmt.Printf("   📦 %s\n", filepath.Base(zipPath))
	}
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
}
