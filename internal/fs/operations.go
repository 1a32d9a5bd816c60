package fs

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// FileOps bundles buffered file I/O for the generators. Methods are safe
// for concurrent use as long as workers touch disjoint paths, which is the
// only access pattern the generators have.
type FileOps struct {
	bufferSize int
}

func NewFileOps(bufferSize int) *FileOps {
	if bufferSize <= 0 {
		bufferSize = 64 * 1024 // Default 64KB
	}
	return &FileOps{
		bufferSize: bufferSize,
	}
}

func (fo *FileOps) WriteFile(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	// For small data, write all at once
	if len(data) < fo.bufferSize {
		_, err := file.Write(data)
		if err != nil {
			return fmt.Errorf("failed to write small file %s: %w", path, err)
		}
		return file.Sync()
	}

	// For larger data, use buffered writing
	for i := 0; i < len(data); i += fo.bufferSize {
		end := i + fo.bufferSize
		if end > len(data) {
			end = len(data)
		}

		chunk := data[i:end]
		_, err := file.Write(chunk)
		if err != nil {
			return fmt.Errorf("failed to write chunk to file %s: %w", path, err)
		}
	}

	return file.Sync()
}

// WriteStream creates path and hands fill a buffered writer, so multi-GB
// content can be produced without holding it in memory. It returns the
// number of bytes the fill callback wrote.
func (fo *FileOps) WriteStream(path string, fill func(w io.Writer) error) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	bw := bufio.NewWriterSize(file, fo.bufferSize)
	cw := &countingWriter{w: bw}
	if err := fill(cw); err != nil {
		return cw.n, fmt.Errorf("failed to stream into %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		return cw.n, fmt.Errorf("failed to sync %s: %w", path, err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// HashFile returns the hex BLAKE2b-256 digest of a file, read in
// bufferSize chunks.
func (fo *FileOps) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to init digest: %w", err)
	}
	buf := make([]byte, fo.bufferSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Shred overwrites a file with three random passes plus a zero pass
// before removing it, so reaped test artifacts cannot be trivially
// recovered from disk.
func (fo *FileOps) Shred(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file for shredding %s: %w", path, err)
	}

	size := stat.Size()
	if size == 0 {
		return os.Remove(path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open file for shredding %s: %w", path, err)
	}
	defer file.Close()

	// Overwrite with random data multiple times
	for pass := 0; pass < 3; pass++ {
		if _, err := file.Seek(0, 0); err != nil {
			return fmt.Errorf("failed to seek in file during shredding %s: %w", path, err)
		}

		written := int64(0)
		for written < size {
			chunkSize := fo.bufferSize
			if written+int64(chunkSize) > size {
				chunkSize = int(size - written)
			}

			randomData := make([]byte, chunkSize)
			if _, err := rand.Read(randomData); err != nil {
				return fmt.Errorf("failed to generate random data for shredding %s: %w", path, err)
			}

			n, err := file.Write(randomData)
			if err != nil {
				return fmt.Errorf("failed to write random data during shredding %s: %w", path, err)
			}
			written += int64(n)
		}

		if err := file.Sync(); err != nil {
			return fmt.Errorf("failed to sync during shredding %s: %w", path, err)
		}
	}

	// Final overwrite with zeros
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek for zero overwrite %s: %w", path, err)
	}

	written := int64(0)
	zeroBuffer := make([]byte, fo.bufferSize)
	for written < size {
		chunkSize := fo.bufferSize
		if written+int64(chunkSize) > size {
			chunkSize = int(size - written)
		}

		n, err := file.Write(zeroBuffer[:chunkSize])
		if err != nil {
			return fmt.Errorf("failed to write zeros during shredding %s: %w", path, err)
		}
		written += int64(n)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync zero overwrite %s: %w", path, err)
	}

	file.Close()

	// Finally remove the file
	return os.Remove(path)
}

func FindFiles(rootDir string, includeFunc func(string, os.FileInfo) bool) ([]string, error) {
	var files []string
	var mutex sync.Mutex

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip files/directories we can't access
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if includeFunc(path, info) {
			mutex.Lock()
			files = append(files, path)
			mutex.Unlock()
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", rootDir, err)
	}

	return files, nil
}

// EnsureEmptyDir creates path if missing and rejects a non-empty existing
// directory. Callers clear the directory themselves when the user asked
// to overwrite.
func EnsureEmptyDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return os.MkdirAll(path, 0o755)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %s is not empty (use -force to overwrite)", path)
	}
	return nil
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func GetFileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
