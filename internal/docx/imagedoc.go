package docx

import (
	"archive/zip"
	"fmt"
	"os"

	"file-forge/internal/pixel"
	"file-forge/internal/rng"
)

// ImageDocOptions shape the image-embedding document flavor.
type ImageDocOptions struct {
	NumImages     int
	Target        int64 // requested package size in bytes
	PNGWidth      int
	PageWidthCm   float64
	MarginLeftCm  float64
	MarginRightCm float64
	Cushion       int64 // reserve for ZIP central directory growth
}

// ImageDocInfo reports the geometry and sizes of an image-document build.
type ImageDocInfo struct {
	Path        string
	NumImages   int
	PNGWidth    int
	PNGHeight   int
	CxEMU       int64
	CyEMU       int64
	PerPNGBytes int
	FinalBytes  int64
	Healed      int
}

// WriteImageDoc builds a DOCX that displays NumImages PNGs scaled to the
// page content width, sized so the whole package approaches opts.Target.
//
// The build runs in two passes: the document body is first rendered with
// a placeholder square display size to measure the fixed parts, the
// remaining budget picks the PNG geometry, then the body is rebuilt with
// the real aspect ratio. Images past the first are regenerated from
// derived seeds; any that stray from the solved byte size are replaced by
// the verified sample so every media part stays the same length.
func WriteImageDoc(path string, opts ImageDocOptions, src *rng.Source) (info ImageDocInfo, err error) {
	path = normalizeExt(path)
	info.Path = path
	info.NumImages = opts.NumImages
	info.PNGWidth = opts.PNGWidth

	contentWidthCm := opts.PageWidthCm - opts.MarginLeftCm - opts.MarginRightCm
	if contentWidthCm < 0.5 {
		contentWidthCm = 0.5
	}
	cx := EmuFromCm(contentWidthCm)

	relsXML := DocRels(opts.NumImages)
	placeholderDoc := DocumentXML(opts.NumImages, cx, cx)
	baseFixed := int64(len(contentTypesImage)) + int64(len(relsRoot)) +
		int64(len(relsXML)) + int64(len(placeholderDoc))

	mediaBudget := opts.Target - baseFixed - opts.Cushion
	if mediaBudget < 1 {
		mediaBudget = 1
	}
	perImageTarget := mediaBudget / int64(opts.NumImages)
	if perImageTarget < 1 {
		perImageTarget = 1
	}

	height, sample, err := pixel.SolveHeightRandom(perImageTarget, opts.PNGWidth, 100, src)
	if err != nil {
		return info, fmt.Errorf("failed to solve image geometry: %w", err)
	}
	info.PNGHeight = height
	info.PerPNGBytes = len(sample)

	cy := cx * int64(height) / int64(opts.PNGWidth)
	if cy < 1 {
		cy = 1
	}
	info.CxEMU, info.CyEMU = cx, cy
	documentXML := DocumentXML(opts.NumImages, cx, cy)

	file, err := os.Create(path)
	if err != nil {
		return info, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	zw := zip.NewWriter(file)
	defer func() {
		closeErr := zw.Close()
		if err == nil {
			err = closeErr
		}
		if err == nil {
			info.FinalBytes, err = fileSize(path)
		}
	}()

	fixed := []part{
		{"[Content_Types].xml", []byte(contentTypesImage)},
		{"_rels/.rels", []byte(relsRoot)},
		{"word/_rels/document.xml.rels", []byte(relsXML)},
		{"word/document.xml", []byte(documentXML)},
	}
	for _, p := range fixed {
		if err := addStored(zw, p.name, p.body); err != nil {
			return info, err
		}
	}

	for i := 1; i <= opts.NumImages; i++ {
		var png []byte
		if i == 1 {
			png = sample
		} else {
			png, err = pixel.RandomPNG(opts.PNGWidth, height, src.Derive(i))
			if err != nil {
				return info, fmt.Errorf("failed to build image %d: %w", i, err)
			}
		}
		if len(png) != info.PerPNGBytes {
			png = sample
			info.Healed++
		}
		name := fmt.Sprintf("word/media/image%05d.png", i)
		if err := addStored(zw, name, png); err != nil {
			return info, err
		}
	}
	return info, nil
}
