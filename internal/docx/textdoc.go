package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"file-forge/internal/rng"
	"file-forge/internal/text"
)

// TextDocOptions shape the text-only document flavor.
type TextDocOptions struct {
	Target     int64 // requested package size in bytes
	Margin     int64 // safety margin kept below the target
	ChunkBytes int   // streamed write granularity
	ParaBytes  int   // text bytes per paragraph before XML wrapping
	Rich       bool  // include docProps, styles and a populated rels set
	Title      string
}

// TextDocInfo reports what a text-document build produced.
type TextDocInfo struct {
	Path       string
	FinalBytes int64
	Paragraphs int64
	DocBytes   int64
}

// WriteTextDoc builds a text-only DOCX whose final size lands at or just
// under opts.Target. Every entry is stored uncompressed so sizes add
// exactly, and word/document.xml is streamed so multi-GB documents never
// reside in memory.
func WriteTextDoc(path string, opts TextDocOptions, src *rng.Source) (info TextDocInfo, err error) {
	path = normalizeExt(path)
	info.Path = path

	if opts.ChunkBytes < 256*1024 {
		opts.ChunkBytes = 256 * 1024
	}
	if opts.ParaBytes < 64 {
		opts.ParaBytes = 64
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	effectiveTarget := opts.Target - opts.Margin
	if effectiveTarget < 1 {
		effectiveTarget = 1
	}

	fixed := fixedTextParts(opts)
	var otherParts int64
	for _, part := range fixed {
		otherParts += int64(len(part.body))
	}

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

	for _, part := range fixed {
		if err := addStored(zw, part.name, part.body); err != nil {
			return info, err
		}
	}

	w, err := zw.CreateHeader(&zip.FileHeader{Name: "word/document.xml", Method: zip.Store})
	if err != nil {
		return info, fmt.Errorf("failed to open document part: %w", err)
	}

	budget := effectiveTarget - otherParts
	if budget < 0 {
		budget = 0
	}
	if _, err := w.Write([]byte(docHead)); err != nil {
		return info, fmt.Errorf("failed to write document head: %w", err)
	}
	info.DocBytes = int64(len(docHead))

	remaining := budget - int64(len(docHead)) - int64(len(docTail))
	for remaining > 0 {
		targetChunk := int64(opts.ChunkBytes)
		if targetChunk > remaining {
			targetChunk = remaining
		}
		// Below this there is no room for even a tiny paragraph.
		if targetChunk <= int64(paraOverhead)+16 {
			break
		}
		chunk, paras := buildParagraphChunk(src, int(targetChunk), opts.ParaBytes)
		if _, err := w.Write(chunk); err != nil {
			return info, fmt.Errorf("failed to write document chunk: %w", err)
		}
		info.DocBytes += int64(len(chunk))
		info.Paragraphs += int64(paras)
		remaining -= int64(len(chunk))
	}

	if _, err := w.Write([]byte(docTail)); err != nil {
		return info, fmt.Errorf("failed to write document tail: %w", err)
	}
	info.DocBytes += int64(len(docTail))
	return info, nil
}

type part struct {
	name string
	body []byte
}

func fixedTextParts(opts TextDocOptions) []part {
	if !opts.Rich {
		return []part{
			{"[Content_Types].xml", []byte(contentTypesText)},
			{"_rels/.rels", []byte(relsRoot)},
		}
	}
	title := opts.Title
	if title == "" {
		title = "Generated text document"
	}
	return []part{
		{"[Content_Types].xml", []byte(contentTypesRich)},
		{"_rels/.rels", []byte(relsRootRich)},
		{"docProps/core.xml", []byte(corePropsXML(title))},
		{"docProps/app.xml", []byte(appPropsXML)},
		{"word/_rels/document.xml.rels", []byte(emptyDocRels)},
		{"word/styles.xml", []byte(stylesXML)},
	}
}

// buildParagraphChunk packs full paragraphs up to target bytes, closing
// with one trimmed paragraph when a useful remainder is left.
func buildParagraphChunk(src *rng.Source, target, paraText int) ([]byte, int) {
	if paraText < 32 {
		paraText = 32
	}
	var chunk bytes.Buffer
	chunk.Grow(target)
	paras := 0
	for chunk.Len()+paraOverhead+paraText <= target {
		chunk.WriteString(paraPrefix)
		chunk.Write(text.ExactBytes(paraText, src))
		chunk.WriteString(paraSuffix)
		paras++
	}
	if remaining := target - chunk.Len(); remaining > paraOverhead+8 {
		chunk.WriteString(paraPrefix)
		chunk.Write(text.ExactBytes(remaining-paraOverhead, src))
		chunk.WriteString(paraSuffix)
		paras++
	}
	return chunk.Bytes(), paras
}

func addStored(zw *zip.Writer, name string, body []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to add part %s: %w", name, err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write part %s: %w", name, err)
	}
	return nil
}

func normalizeExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".docx"
}

func fileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
