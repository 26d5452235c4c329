// Package writers holds output helpers for the command-line tool.
package writers

import (
	"io"
	"os"
)

// LazyWriteCloser delays initialization until the first write, so a failed
// run leaves no empty output file behind.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// NewLazyWriteCloser returns a writer that calls init once, on first write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// NewLazyFile opens path for writing on first write, truncating it.
func NewLazyFile(path string) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

func (w *LazyWriteCloser) Write(p []byte) (int, error) {
	if w.writer == nil {
		var err error
		w.writer, err = w.init()
		if err != nil {
			return 0, err
		}
	}
	return w.writer.Write(p)
}

// Close closes the underlying writer if it was ever opened.
func (w *LazyWriteCloser) Close() error {
	if w.writer != nil {
		return w.writer.Close()
	}
	return nil
}

// Opened reports whether anything has been written.
func (w *LazyWriteCloser) Opened() bool {
	return w.writer != nil
}

// NopCloser wraps a writer such as os.Stdout that must stay open.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
