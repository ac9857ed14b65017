package session

import (
	"io"
	"sync"
)

const chunkSize = 8192

// output keeps the last chunkSize bytes written to any of its streams and
// signals every write on activity
type output struct {
	mu    sync.Mutex
	chunk []byte

	activity chan struct{}
}

func newOutput() *output {
	return &output{
		chunk:    make([]byte, 0, chunkSize),
		activity: make(chan struct{}, 1),
	}
}

func (o *output) stream(sink io.Writer) io.Writer {
	return &stream{output: o, sink: sink}
}

func (o *output) record(p []byte) {
	if len(p) >= chunkSize {
		o.chunk = append(o.chunk[:0], p[len(p)-chunkSize:]...)
		return
	}

	if overflow := len(o.chunk) + len(p) - chunkSize; overflow > 0 {
		o.chunk = append(o.chunk[:0], o.chunk[overflow:]...)
	}

	o.chunk = append(o.chunk, p...)
}

func (o *output) notify() {
	select {
	case o.activity <- struct{}{}:
	default:
	}
}

func (o *output) last() []byte {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.chunk) == 0 {
		return nil
	}

	return append([]byte(nil), o.chunk...)
}

type stream struct {
	output *output
	sink   io.Writer
}

func (s *stream) Write(p []byte) (int, error) {
	s.output.mu.Lock()
	defer s.output.mu.Unlock()

	s.output.record(p)
	s.output.notify()

	if s.sink == nil {
		return len(p), nil
	}

	return s.sink.Write(p)
}
