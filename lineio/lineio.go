// Package lineio adapts line-oriented files and streams to the factorial
// pipeline's Source and Sink.
package lineio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	factorial "github.com/easygolabs/FactorialCalculator"
)

// Source reads lines of any length from a reader.
// Line terminators ("\n" or "\r\n") are stripped.
type Source struct {
	r      *bufio.Reader
	closer io.Closer
}

// NewSource returns a Source reading from r.
func NewSource(r io.Reader) *Source {
	return &Source{r: bufio.NewReader(r)}
}

// OpenSource opens the file at path for reading.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewSource(f)
	s.closer = f
	return s, nil
}

// Next returns the next line, or io.EOF after the last one.
func (s *Source) Next() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// last line without a terminator
			return line, nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line[:len(line)-1], "\r")
	return line, nil
}

// Close closes the underlying file, if Source owns one.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Sink writes one line per result. Output is buffered until Close.
type Sink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewSink returns a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// CreateSink creates or truncates the file at path.
func CreateSink(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewSink(f)
	s.closer = f
	return s, nil
}

// Write writes r followed by a newline.
func (s *Sink) Write(r factorial.Result) error {
	if _, err := s.w.WriteString(r.String()); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Close flushes buffered output and closes the underlying file, if Sink owns one.
func (s *Sink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

var (
	_ factorial.Source = (*Source)(nil)
	_ factorial.Sink   = (*Sink)(nil)
)
