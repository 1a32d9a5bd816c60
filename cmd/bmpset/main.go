package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"file-forge/internal/cli"
	"file-forge/internal/gen"
	"file-forge/pkg/units"
)

var version = "dev"

func main() {
	var (
		dir   = flag.String("dir", "./bmp_set", "Output directory")
		size  = flag.Float64("size", 1, "Combined target size value")
		unit  = flag.String("unit", "GiB", "Size unit: "+units.Names())
		count = flag.Int("count", 100, "Number of BMP files")
		width = flag.Int("width", 0, "BMP pixel width (0 = square solved from the per-file budget)")
		jobs  = flag.Int("jobs", runtime.NumCPU(), "Parallel writer goroutines")
		seed  = flag.Int64("seed", 0, "Random seed (0 = fresh entropy)")
		force = flag.Bool("force", false, "Allow a non-empty output directory")
		yes   = flag.Bool("yes", false, "Skip confirmation prompts")
	)
	flag.Parse()

	u, err := units.ParseUnit(*unit)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	target, err := units.ToBytes(*size, u)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	cfg := gen.BMPSetConfig{
		Dir: *dir, Target: target, Count: *count, Width: *width,
		Jobs: *jobs, Seed: *seed, Force: *force,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 bmpset %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Dir)
	fmt.Printf("   🎯 Target: %s across %d files\n", units.FormatBytes(target), cfg.Count)
	fmt.Printf("   ⚡ Jobs: %d\n", cfg.Jobs)
	fmt.Printf("   🎲 Seed: %d\n", cfg.Seed)

	if target >= 1<<30 && !cli.Confirm(fmt.Sprintf("About to write %s to disk. Proceed?", units.FormatBytes(target)), true, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	fmt.Println("🚀 Generating...")
	res, err := gen.RunBMPSet(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Files: %d, total %s\n", res.Files, units.FormatBytes(res.Bytes))
	fmt.Printf("   🖼️  Geometry: %dx%d px each\n", res.Width, res.Height)
	fmt.Printf("   🧪 Compressibility: %.1f%% of original (LZ4)\n", res.Ratio*100)
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
	fmt.Printf("   💾 Throughput: %s\n", cli.FormatRate(cli.Rate(res.Bytes, res.Elapsed)))
}
