// Package archive writes the ZIP containers the generators produce:
// flat entry lists, zipped directory trees, and the nested self-containing
// archive sets used to exercise archive scanners.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
)

// Entry is one file to place in an archive.
type Entry struct {
	Name string
	Body []byte
	Mode os.FileMode
}

// registerDeflate swaps in the klauspost deflate encoder at BestSpeed.
// The stock encoder is noticeably slower on multi-GB trees and the
// compression ratio is irrelevant for throwaway test data.
func registerDeflate(zw *zip.Writer) {
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})
}

// Write creates a ZIP archive at path holding the given entries.
func Write(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	zw := zip.NewWriter(file)
	defer zw.Close()
	registerDeflate(zw)
	now := time.Now()
	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		header.SetModTime(now)
		if entry.Mode != 0 {
			header.SetMode(entry.Mode)
		} else {
			header.SetMode(0o644)
		}
		writer, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if _, err := writer.Write(entry.Body); err != nil {
			return err
		}
	}
	return nil
}

// ZipDir archives the contents of dir into a sibling "<dir>.zip" with
// forward-slashed entry names relative to dir, and returns the archive
// path. File bodies are streamed, not buffered.
func ZipDir(dir string) (string, error) {
	zipPath := dir + ".zip"
	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive %s: %w", zipPath, err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)
	defer zw.Close()
	registerDeflate(zw)
	now := time.Now()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		header := &zip.FileHeader{Name: filepath.ToSlash(rel), Method: zip.Deflate}
		header.SetModTime(now)
		header.SetMode(info.Mode())
		writer, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(writer, in)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}
	return zipPath, nil
}
