package core

import (
	"io"

	"github.com/jmgilman/go/vfs/errors"
)

// readerAdapter exposes a Stream through io.Reader semantics.
type readerAdapter struct {
	s Stream
}

// AsReader adapts s to io.Reader. A short read at the end of the stream
// returns the bytes read and a nil error; the next call returns io.EOF.
func AsReader(s Stream) io.Reader {
	return &readerAdapter{s: s}
}

func (r *readerAdapter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.s.Read(p)
	if errors.IsEndOfStream(err) {
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	return n, err
}

// ReadAll reads s from its current position to the end.
func ReadAll(s Stream) ([]byte, error) {
	data, err := io.ReadAll(AsReader(s))
	if err != nil {
		return data, errors.WithOp(err, "read_all", s.Name())
	}
	return data, nil
}
