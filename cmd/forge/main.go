package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"file-forge/internal/cli"
	"file-forge/internal/gen"
	"file-forge/pkg/plan"
	"file-forge/pkg/units"
)

var version = "dev"

// DefaultPlanPathStr is overrideable at build time via -ldflags -X
// "file-forge/cmd/forge.DefaultPlanPathStr=corpus.yaml".
var DefaultPlanPathStr = ""

func main() {
	var (
		planPath = flag.String("plan", DefaultPlanPathStr, "YAML plan file (empty = build-time embedded plan)")
		outDir   = flag.String("out", "", "Override the plan's output directory")
		seed     = flag.Int64("seed", 0, "Override the plan's base seed")
		dryRun   = flag.Bool("dry-run", false, "List the items without generating anything")
		yes      = flag.Bool("yes", false, "Skip confirmation prompts")
	)
	flag.Parse()

	p, err := loadPlan(*planPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *outDir != "" {
		p.OutDir = *outDir
	}
	if *seed != 0 {
		p.Seed = *seed
	}

	fmt.Printf("🔧 forge %s\n", version)
	fmt.Printf("   📋 Plan: %s (%s)\n", p.Name, p.Source)
	if p.Description != "" {
		fmt.Printf("   📝 %s\n", p.Description)
	}
	fmt.Printf("   📁 Output dir: %s\n", orDot(p.OutDir))
	fmt.Printf("   🧾 Items: %d\n", len(p.Items))

	if *dryRun {
		for i, item := range p.Items {
			fmt.Printf("   %2d. [%s] %s → %s\n", i+1, item.Kind, item.Name, itemPath(p, item))
		}
		fmt.Println("✅ Dry run, nothing written.")
		return
	}
	if !cli.Confirm(fmt.Sprintf("Execute %d generator run(s)?", len(p.Items)), true, *yes) {
		fmt.Println("❌ Cancelled.")
		return
	}

	report := plan.RunReport{Plan: p.Name, Source: p.Source, Started: time.Now()}
	failures := 0
	for i, item := range p.Items {
		fmt.Printf("\n🚀 [%d/%d] %s (%s)\n", i+1, len(p.Items), item.Name, item.Kind)
		res, err := runItem(p, item, i+1)
		entry := plan.ItemResult{
			Name: item.Name, Kind: item.Kind, Path: res.Path,
			Files: res.Files, Bytes: res.Bytes, Healed: res.Healed,
			Seconds: res.Elapsed.Seconds(),
		}
		if err != nil {
			entry.Error = err.Error()
			failures++
			fmt.Printf("❌ %s failed: %v\n", item.Name, err)
		} else {
			report.TotalFiles += res.Files
			report.TotalBytes += res.Bytes
			fmt.Printf("✅ %s: %d file(s), %s in %.2fs\n",
				item.Name, res.Files, units.FormatBytes(res.Bytes), res.Elapsed.Seconds())
		}
		report.Items = append(report.Items, entry)
	}
	report.Finished = time.Now()

	fmt.Printf("\n📊 Batch complete!\n")
	fmt.Printf("   ✅ Succeeded: %d\n", len(p.Items)-failures)
	fmt.Printf("   ❌ Failed: %d\n", failures)
	fmt.Printf("   📦 Total: %d file(s), %s\n", report.TotalFiles, units.FormatBytes(report.TotalBytes))

	if p.Report.Enabled {
		path := p.Report.Path
		if path == "" {
			path = cli.Timestamp(report.Started) + "_forge_report.yaml"
		}
		if err := report.WriteReport(path); err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Printf("   🧾 Report: %s\n", path)
	}
	if failures > 0 {
		log.Fatalf("❌ %d item(s) failed", failures)
	}
}

func loadPlan(path string) (*plan.Plan, error) {
	if path != "" {
		return plan.LoadFile(path)
	}
	if plan.HasEmbedded() {
		return plan.LoadEmbedded()
	}
	return nil, fmt.Errorf("no plan given: pass -plan or embed one at build time")
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// itemPath resolves an item's output location against the plan's output
// directory; absolute item paths win.
func itemPath(p *plan.Plan, item plan.Item) string {
	if item.Path == "" || filepath.IsAbs(item.Path) || p.OutDir == "" {
		return item.Path
	}
	return filepath.Join(p.OutDir, item.Path)
}

func itemSeed(p *plan.Plan, item plan.Item, index int) int64 {
	if item.Seed != 0 {
		return item.Seed
	}
	if p.Seed != 0 {
		// Spread the base seed so items do not share streams.
		return p.Seed + int64(index)
	}
	return 0
}

func itemTarget(item plan.Item) (int64, error) {
	unitName := item.Unit
	if unitName == "" {
		unitName = "MB"
	}
	u, err := units.ParseUnit(unitName)
	if err != nil {
		return 0, err
	}
	return units.ToBytes(item.Size, u)
}

func itemJobs(item plan.Item) int {
	if item.Jobs > 0 {
		return item.Jobs
	}
	return runtime.NumCPU()
}

// runItem dispatches one plan item to its generator. Force is always
// set: a batch the user already confirmed should not stall on non-empty
// directories.
func runItem(p *plan.Plan, item plan.Item, index int) (gen.Result, error) {
	path := itemPath(p, item)
	seed := itemSeed(p, item, index)
	switch item.Kind {
	case "bigtext":
		target, err := itemTarget(item)
		if err != nil {
			return gen.Result{}, err
		}
		width := item.Width
		if width == 0 {
			width = 75
		}
		return gen.RunBigText(gen.BigTextConfig{
			Path: path, Target: target, LineWidth: width,
			Words: item.Mode == "words", Seed: seed,
		})
	case "bigdocx":
		target, err := itemTarget(item)
		if err != nil {
			return gen.Result{}, err
		}
		return gen.RunTextDocx(gen.TextDocxConfig{
			Path: path, Target: target, Margin: 2_000_000,
			Rich: item.Rich, Title: item.Name, Seed: seed,
		})
	case "imagedocx":
		target, err := itemTarget(item)
		if err != nil {
			return gen.Result{}, err
		}
		return gen.RunImageDocx(gen.ImageDocxConfig{
			Path: path, Target: target, NumImages: orInt(item.Count, 10),
			Width: orInt(item.Width, 512), PageWidthCm: 21.0,
			MarginLeftCm: 2.0, MarginRightCm: 2.0,
			Cushion: 800_000, Verify: true, Seed: seed,
		})
	case "pngset":
		target, err := itemTarget(item)
		if err != nil {
			return gen.Result{}, err
		}
		mode, err := gen.ParseUnique(item.Unique)
		if err != nil {
			return gen.Result{}, err
		}
		return gen.RunPNGSet(gen.PNGSetConfig{
			Dir: path, Target: target, Count: orInt(item.Count, 100),
			Width: orInt(item.Width, 512), Unique: mode, Rows: orInt(item.Rows, 8),
			Jobs: itemJobs(item), Seed: seed, Force: true,
		})
	case "bmpset":
		target, err := itemTarget(item)
		if err != nil {
			return gen.Result{}, err
		}
		return gen.RunBMPSet(gen.BMPSetConfig{
			Dir: path, Target: target, Count: orInt(item.Count, 100),
			Width: item.Width, Jobs: itemJobs(item), Seed: seed, Force: true,
		})
	case "zipnest":
		return gen.RunZipNest(gen.ZipNestConfig{
			Dir: path, Depth: orInt(item.Depth, 5), Payload: item.Payload,
			Seed: seed, Force: true,
		})
	case "dirtree":
		return gen.RunDirTree(gen.DirTreeConfig{
			Dir: path, Start: item.Start, Count: orInt(item.Count, 10),
			Suffix: item.Suffix, Leaf: item.Leaf,
		})
	case "scanbait":
		return gen.RunScanBait(gen.ScanBaitConfig{Dir: path, Kinds: item.Kinds})
	default:
		return gen.Result{}, fmt.Errorf("unknown item kind %q", item.Kind)
	}
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
