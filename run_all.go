package factorial

import (
	"context"
	"io"
)

// RunAll runs a new Pipeline configured by opts over in-memory lines.
// It returns the emitted results in input order together with the run error.
// Values lost to a shutdown timeout are missing from the results.
func RunAll(ctx context.Context, lines []string, opts ...Option) ([]Result, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}

	sink := &collectSink{results: make([]Result, 0, len(lines))}
	err = p.Run(ctx, &sliceSource{lines: lines}, sink)
	return sink.results, err
}

// sliceSource yields lines from a slice.
type sliceSource struct {
	lines []string
	next  int
}

func (s *sliceSource) Next() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

// collectSink appends results to a slice. Only the emitter goroutine writes to it.
type collectSink struct {
	results []Result
}

func (s *collectSink) Write(r Result) error {
	s.results = append(s.results, r)
	return nil
}
