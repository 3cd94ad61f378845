package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmgilman/go/vfs/core"
)

// stream counts the bytes moved through a core.Stream.
type stream struct {
	core.Stream
	bytes  prometheus.Counter
	open   prometheus.Gauge
	closed bool
}

func (b *Backend) wrapStream(s core.Stream, mode string) core.Stream {
	open := b.metrics.openStreams.WithLabelValues(b.label, mode)
	open.Inc()
	return &stream{
		Stream: s,
		bytes:  b.metrics.bytes.WithLabelValues(b.label, mode),
		open:   open,
	}
}

func (s *stream) Read(p []byte) (int, error) {
	n, err := s.Stream.Read(p)
	s.bytes.Add(float64(n))
	return n, err
}

func (s *stream) Write(p []byte) (int, error) {
	n, err := s.Stream.Write(p)
	s.bytes.Add(float64(n))
	return n, err
}

func (s *stream) Close() error {
	if !s.closed {
		s.closed = true
		s.open.Dec()
	}
	return s.Stream.Close()
}
