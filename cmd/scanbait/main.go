package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"file-forge/internal/gen"
	"file-forge/pkg/units"
)

var version = "dev"

func main() {
	var (
		dir   = flag.String("dir", "./scan_bait", "Output directory")
		kinds = flag.String("kinds", "", "Comma-separated bait kinds: "+strings.Join(gen.BaitKinds, ", ")+" (empty = all)")
		eicar = flag.String("eicar-name", "eicar.txt", "File name for the EICAR payload")
		vbs   = flag.String("vbs-name", "macro.vbs", "File name for the VBS macro stub")
		js    = flag.String("js-name", "script.js", "File name for the JS stub")
		pdf   = flag.String("pdf-name", "pdf_js_test.pdf", "File name for the PDF with embedded JavaScript")
	)
	flag.Parse()

	var kindList []string
	if *kinds != "" {
		for _, kind := range strings.Split(*kinds, ",") {
			kindList = append(kindList, strings.TrimSpace(kind))
		}
	}
	cfg := gen.ScanBaitConfig{
		Dir: *dir, Kinds: kindList,
		EicarName: *eicar, VBSName: *vbs, JSName: *js, PDFName: *pdf,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🔧 scanbait %s\n", version)
	fmt.Printf("   📁 Output: %s\n", cfg.Dir)
	if len(kindList) == 0 {
		fmt.Printf("   🧲 Kinds: %s\n", strings.Join(gen.BaitKinds, ", "))
	} else {
		fmt.Printf("   🧲 Kinds: %s\n", strings.Join(kindList, ", "))
	}

	res, err := gen.RunScanBait(cfg)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n📊 Done!\n")
	fmt.Printf("   ✅ Payloads: %d, total %s\n", res.Files, units.FormatBytes(res.Bytes))
	fmt.Println("   ⚠️  These files exist to trip scanners. Keep them inside test corpora.")
}
