// Package textfile writes line-oriented text files in a chosen character
// encoding.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnknownEncoding = errors.New("textfile: unknown encoding")

// Writer is a scoped output file. Callers must Close it.
type Writer struct {
	file       *os.File
	enc        io.WriteCloser
	buf        *bufio.Writer
	lineEnding string
	closed     bool
	closeErr   error
}

type Option func(*Writer)

// WithLineEnding sets the terminator written after every line.
func WithLineEnding(ending string) Option {
	return func(w *Writer) {
		w.lineEnding = ending
	}
}

// LookupEncoding resolves a WHATWG/IANA encoding label. An empty label is
// UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

func isUnicode(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	if err != nil {
		return enc == unicode.UTF8
	}
	return strings.HasPrefix(name, "utf-")
}

// Create truncates or creates path and returns a writer encoding into it.
// Unicode encodings start with a byte order mark.
func Create(path, encodingName string, opts ...Option) (*Writer, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := &Writer{
		file:       file,
		enc:        transform.NewWriter(file, encoding.ReplaceUnsupported(enc.NewEncoder())),
		lineEnding: "\n",
	}
	w.buf = bufio.NewWriter(w.enc)

	for _, opt := range opts {
		opt(w)
	}

	if isUnicode(enc) {
		if _, err := w.buf.WriteRune('\ufeff'); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to write byte order mark: %w", err)
		}
	}

	return w, nil
}

// WriteLine writes line followed by the line ending. Line breaks inside
// line are rewritten to the same ending.
func (w *Writer) WriteLine(line string) error {
	if w.closed {
		return os.ErrClosed
	}

	if strings.ContainsAny(line, "\r\n") {
		line = strings.ReplaceAll(line, "\r\n", "\n")
		line = strings.ReplaceAll(line, "\n", w.lineEnding)
	}

	if _, err := w.buf.WriteString(line); err != nil {
		return err
	}
	_, err := w.buf.WriteString(w.lineEnding)
	return err
}

// Close flushes buffered output and closes the file. Later calls return
// the result of the first.
func (w *Writer) Close() error {
	if w.closed {
		return w.closeErr
	}
	w.closed = true

	err := w.buf.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}

	w.closeErr = err
	return err
}
