// Package text generates random filler text with exact byte lengths.
//
// Two shapes are supported: a word stream (lowercase words in newline
// terminated bursts, output restricted to letters and whitespace so it can
// be embedded in XML without escaping) and fixed-width lines drawn from a
// wide printable charset. Both land on a requested byte count exactly by
// trimming the final fragment.
package text

import (
	"bytes"
	"fmt"
	"io"

	"file-forge/internal/rng"
)

const (
	wordLetters = "abcdefghijklmnopqrstuvwxyz"
	lineCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		".,<>/?;'\\:\"|[]{}=+-_!@#$%^&*(), "

	minWordLen  = 3
	maxWordLen  = 12
	minBurst    = 8
	maxBurst    = 18
	maxFragment = maxWordLen + 4 + 1
)

// separators weight plain single spaces while still mixing in runs and
// tabs, so word-mode output does not look machine-regular.
var separators = []string{" ", "  ", "   ", " ", "\t", " ", "    "}

// Stream produces word-mode text one bounded fragment at a time. Each
// fragment is a single word plus its separator, at most maxFragment bytes,
// so callers can trim the final fragment to land on an exact size without
// buffering whole paragraphs.
type Stream struct {
	src  *rng.Source
	left int
	buf  []byte
}

// NewStream returns a word stream drawing from src.
func NewStream(src *rng.Source) *Stream {
	return &Stream{
		src:  src,
		left: src.Range(minBurst, maxBurst),
		buf:  make([]byte, 0, maxFragment),
	}
}

// Next returns the next fragment. The returned slice is reused on the
// following call.
func (st *Stream) Next() []byte {
	st.buf = st.buf[:0]
	n := st.src.Range(minWordLen, maxWordLen)
	for i := 0; i < n; i++ {
		st.buf = append(st.buf, wordLetters[st.src.Intn(len(wordLetters))])
	}
	st.left--
	if st.left <= 0 {
		st.left = st.src.Range(minBurst, maxBurst)
		st.buf = append(st.buf, '\n')
		return st.buf
	}
	st.buf = append(st.buf, separators[st.src.Intn(len(separators))]...)
	return st.buf
}

// WriteExact streams exactly n bytes of word-mode text to w. The stream
// overshoots by at most one fragment and trims it, so output length always
// equals n.
func WriteExact(w io.Writer, n int64, src *rng.Source) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("byte count must not be negative, got %d", n)
	}
	st := NewStream(src)
	var written int64
	for written < n {
		frag := st.Next()
		if rem := n - written; int64(len(frag)) > rem {
			frag = frag[:rem]
		}
		k, err := w.Write(frag)
		written += int64(k)
		if err != nil {
			return written, fmt.Errorf("text write: %w", err)
		}
	}
	return written, nil
}

// ExactBytes returns n bytes of word-mode text.
func ExactBytes(n int, src *rng.Source) []byte {
	var buf bytes.Buffer
	buf.Grow(n)
	// Writes to a bytes.Buffer cannot fail.
	_, _ = WriteExact(&buf, int64(n), src)
	return buf.Bytes()
}

// WriteLines streams exactly n bytes of fixed-width printable lines to w.
// Full lines are width characters plus a newline; the last line is
// truncated to whatever remains of the budget.
func WriteLines(w io.Writer, n int64, width int, src *rng.Source) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("byte count must not be negative, got %d", n)
	}
	if width < 1 {
		return 0, fmt.Errorf("line width must be at least 1, got %d", width)
	}
	line := make([]byte, width+1)
	line[width] = '\n'
	var written int64
	for n-written > int64(width) {
		fillLine(line[:width], src)
		k, err := w.Write(line)
		written += int64(k)
		if err != nil {
			return written, fmt.Errorf("text write: %w", err)
		}
	}
	if rem := n - written; rem > 0 {
		fillLine(line[:rem], src)
		k, err := w.Write(line[:rem])
		written += int64(k)
		if err != nil {
			return written, fmt.Errorf("text write: %w", err)
		}
	}
	return written, nil
}

// fillLine maps keystream bytes onto the printable charset. Bulk mapping
// is far cheaper than one random pick per character at multi-GB scale.
func fillLine(p []byte, src *rng.Source) {
	src.Fill(p)
	for i, b := range p {
		p[i] = lineCharset[int(b)%len(lineCharset)]
	}
}
