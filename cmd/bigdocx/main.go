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
		out    = flag.String("out", "text_only.docx", "Output document path")
		size   = flag.Float64("size", 2, "Target size value")
		unit   = flag.String("unit", "GB", "Size unit: "+units.Names())
		margin = flag.Int64("margin", 2_000_000, "Safety margin in bytes kept below the target")
		chunk  = flag.Int("chunk", 4*1024*1024, "Streamed write granularity in bytes")
		para   = flag.Int("para", 4096, "Text bytes per paragraph")
		rich   = flag.Bool("rich", false, "Include docProps, styles and a populated rels set")
		title  = flag.String("title", "", "Document title for the rich part set")
		verify = flag.Bool("verify", false, "Re-open and validate the package after writing")
		seed   = flag.Int64("seed", 0, "Random seed (0 = fresh entropy)")
		yes    = flag.Bool("yes", false, "Skip confirmation prompts")
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
	cfg := gen.TextDocxConfig{
		Path: *out, Target: target, Margin: *margin,
		ChunkBytes: *chunk, ParaBytes: *para,
		Rich: *rich, Title: *title, Verify: *verify, Seed: *seed,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 bigdocx %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Path)
	fmt.Printf("   🎯 Target: %s\n", units.FormatBytes(target))
	fmt.Printf("   🛟 Margin: %s\n", units.FormatBytes(cfg.Margin))
	fmt.Printf("   🎲 Seed: %d\n", cfg.Seed)

	if target >= 1<<30 && !cli.Confirm(fmt.Sprintf("About to write %s to disk. Proceed?", units.FormatBytes(target)), true, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	fmt.Println("🚀 Generating...")
	res, err := gen.RunTextDocx(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Final size: %s\n", units.FormatBytes(res.Bytes))
	fmt.Printf("   📄 Paragraphs: %d\n", res.Paragraphs)
	if *verify {
		fmt.Println("   🔍 Package structure verified")
	}
	fmt.Printf("   ⏱️  Time: %.2f seconds\n", res.Elapsed.Seconds())
	fmt.Printf("   💾 Throughput: %s\n", cli.FormatRate(cli.Rate(res.Bytes, res.Elapsed)))
}
