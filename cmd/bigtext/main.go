package main

import (
	"flag"
	"fmt"
	"log"

	"file-forge/internal/cli"
	"file-forge/internal/gen"
	"file-forge/pkg/units"
)

var version = "dev"

func main() {
	var (
		out   = flag.String("out", "big_text.txt", "Output file path")
		size  = flag.Float64("size", 100, "Target size value")
		unit  = flag.String("unit", "MB", "Size unit: "+units.Names())
		width = flag.Int("line-width", 75, "Characters per line in line mode")
		words = flag.Bool("words", false, "Word-stream filler instead of fixed-width lines")
		seed  = flag.Int64("seed", 0, "Random seed (0 = fresh entropy)")
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
	cfg := gen.BigTextConfig{Path: *out, Target: target, LineWidth: *width, Words: *words, Seed: *seed}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 bigtext %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Path)
	fmt.Printf("   🎯 Target: %s\n", units.FormatBytes(target))
	fmt.Printf("   🎲 Seed: %d\n", cfg.Seed)

	if target >= 1<<30 && !cli.Confirm(fmt.Sprintf("About to write %s to disk. Proceed?", units.FormatBytes(target)), true, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	fmt.Println("🚀 Generating...")
	res, err := gen.RunBigText(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Written: %s\n", units.FormatBytes(res.Bytes))
	fmt.Printf("   🧪 Compressibility: %.1f%% of original (LZ4)\n", res.Ratio*100)
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
	fmt.Printf("   💾 Throughput: %s\n", cli.FormatRate(cli.Rate(res.Bytes, res.Elapsed)))
}
