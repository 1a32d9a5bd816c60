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
		out     = flag.String("out", "images.docx", "Output document path")
		size    = flag.Float64("size", 500, "Target size value")
		unit    = flag.String("unit", "MB", "Size unit: "+units.Names())
		count   = flag.Int("images", 10, "Number of embedded PNGs, all displayed inline")
		width   = flag.Int("width", 512, "PNG pixel width")
		page    = flag.Float64("page-cm", 21.0, "Page width in centimeters")
		marginL = flag.Float64("margin-left-cm", 2.0, "Left page margin in centimeters")
		marginR = flag.Float64("margin-right-cm", 2.0, "Right page margin in centimeters")
		cushion = flag.Int64("cushion", 800_000, "Bytes reserved for ZIP central directory growth")
		verify  = flag.Bool("verify", true, "Re-open and validate parts and image references")
		seed    = flag.Int64("seed", 0, "Random seed (0 = fresh entropy)")
		yes     = flag.Bool("yes", false, "Skip confirmation prompts")
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
	cfg := gen.ImageDocxConfig{
		Path: *out, Target: target, NumImages: *count, Width: *width,
		PageWidthCm: *page, MarginLeftCm: *marginL, MarginRightCm: *marginR,
		Cushion: *cushion, Verify: *verify, Seed: *seed,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 imagedocx %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Path)
	fmt.Printf("   🎯 Target: %s\n", units.FormatBytes(target))
	fmt.Printf("   🖼️  Images: %d at %d px wide\n", cfg.NumImages, cfg.Width)
	fmt.Printf("   🎲 Seed: %d\n", cfg.Seed)

	if target >= 1<<30 && !cli.Confirm(fmt.Sprintf("About to write %s to disk. Proceed?", units.FormatBytes(target)), true, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	fmt.Println("🚀 Generating...")
	res, err := gen.RunImageDocx(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Final size: %s\n", units.FormatBytes(res.Bytes))
	fmt.Printf("   🖼️  Geometry: %d images, %dx%d px each\n", cfg.NumImages, res.Width, res.Height)
	if res.Healed > 0 {
		fmt.Printf("   ⚠️  Healed: %d image(s) replaced by the verified sample\n", res.Healed)
	}
	if *verify {
		fmt.Println("   🔍 Package structure and image references verified")
	}
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
	fmt.Printf("   💾 Throughput: %s\n", cli.FormatRate(cli.Rate(res.Bytes, res.Elapsed)))
}
