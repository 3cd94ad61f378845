package native

import (
	"io"

	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// handle is the raw, per-platform file handle a Stream drives. Read and
// Write perform a single transfer and may return fewer bytes than asked.
type handle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Size() (int64, error)
	Sync() error
	Close() error
}

// Stream is a core.Stream over a native file handle.
type Stream struct {
	h        handle
	name     string
	writing  bool
	offset   int64
	size     int64 // captured at open, read mode only
	chunk    int
	logger   *zap.Logger
	closed   bool
	closeErr error
}

func newStream(h handle, name string, writing bool, offset, size int64, chunk int, logger *zap.Logger) *Stream {
	return &Stream{
		h:       h,
		name:    name,
		writing: writing,
		offset:  offset,
		size:    size,
		chunk:   chunk,
		logger:  logger,
	}
}

// Read fills p starting at the tracked offset. Reads stop at the size
// captured at open, so bytes appended later by another writer are not seen.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, core.ClosedError("read", s.name)
	}
	if s.writing {
		return 0, errors.WithOp(errors.New(errors.CodeFailure, "stream is open for writing"), "read", s.name)
	}
	if _, err := s.h.Seek(s.offset, io.SeekStart); err != nil {
		return 0, errors.FromOS(err, errors.CodeReadFault, "read", s.name)
	}

	want := len(p)
	if remaining := s.size - s.offset; int64(want) > remaining {
		want = int(max(remaining, 0))
	}

	processed := 0
	for processed < want {
		request := p[processed:min(want, processed+s.chunk)]

		n, err := s.h.Read(request)
		if err != nil {
			if isInterrupted(err) {
				s.logger.Debug("read interrupted, retrying", zap.String("path", s.name))
				continue
			}
			return processed, errors.WithOp(errors.Wrap(err, errors.CodeReadFault, "read failed"), "read", s.name)
		}
		if n == 0 {
			return processed, errors.WithOp(errors.EndOfStream(processed), "read", s.name)
		}

		processed += n
		s.offset += int64(n)
	}

	if processed < len(p) {
		return processed, errors.WithOp(errors.EndOfStream(processed), "read", s.name)
	}
	return processed, nil
}

// Write writes all of p starting at the tracked offset.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, core.ClosedError("write", s.name)
	}
	if !s.writing {
		return 0, errors.WithOp(errors.New(errors.CodeFailure, "stream is open for reading"), "write", s.name)
	}
	if _, err := s.h.Seek(s.offset, io.SeekStart); err != nil {
		return 0, errors.FromOS(err, errors.CodeWriteFault, "write", s.name)
	}

	processed := 0
	for processed < len(p) {
		request := p[processed:min(len(p), processed+s.chunk)]

		n, err := s.h.Write(request)
		if err != nil {
			if isInterrupted(err) {
				s.logger.Debug("write interrupted, retrying", zap.String("path", s.name))
				continue
			}
			return processed, errors.WithOp(errors.Wrap(err, errors.CodeWriteFault, "write failed"), "write", s.name)
		}
		if n == 0 {
			return processed, errors.WithOp(errors.New(errors.CodeWriteFault, "device accepted no bytes"), "write", s.name)
		}

		processed += n
		s.offset += int64(n)
	}

	return processed, nil
}

// Flush commits written data to stable storage.
func (s *Stream) Flush() error {
	if s.closed {
		return core.ClosedError("flush", s.name)
	}
	if err := s.h.Sync(); err != nil {
		return errors.WithOp(errors.Wrap(err, errors.CodeFailure, "sync failed"), "flush", s.name)
	}
	return nil
}

// Size returns the size captured at open for read streams and the live size
// for write streams.
func (s *Stream) Size() (int64, error) {
	if s.closed {
		return 0, core.ClosedError("size", s.name)
	}
	if !s.writing {
		return s.size, nil
	}
	size, err := s.h.Size()
	if err != nil {
		return 0, errors.FromOS(err, errors.CodeFailure, "size", s.name)
	}
	return size, nil
}

// Position returns the tracked offset.
func (s *Stream) Position() int64 {
	return s.offset
}

// SetPosition moves the tracked offset. Read streams clamp it to the size
// captured at open.
func (s *Stream) SetPosition(offset int64) error {
	_, err := s.Seek(offset, io.SeekStart)
	return err
}

// Seek implements io.Seeker over the tracked offset. Negative results are
// rejected with errors.CodeInvalidInput.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, core.ClosedError("seek", s.name)
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = s.offset
	case io.SeekEnd:
		size, err := s.Size()
		if err != nil {
			return s.offset, err
		}
		base = size
	default:
		return s.offset, errors.WithOp(errors.Newf(errors.CodeInvalidInput, "invalid whence %d", whence), "seek", s.name)
	}

	target := base + offset
	if target < 0 {
		return s.offset, errors.WithOp(errors.Newf(errors.CodeInvalidInput, "negative position %d", target), "seek", s.name)
	}
	if !s.writing && target > s.size {
		target = s.size
	}

	s.offset = target
	return target, nil
}

// Name returns the path the stream was opened with.
func (s *Stream) Name() string {
	return s.name
}

// Close releases the handle and its lock. Only the first call closes the
// handle; later calls return the first result.
func (s *Stream) Close() error {
	if s.closed {
		return s.closeErr
	}
	s.closed = true

	if err := s.h.Close(); err != nil {
		s.closeErr = errors.FromOS(err, errors.CodeFailure, "close", s.name)
	}
	return s.closeErr
}

// Compile-time interface check.
var _ core.Stream = (*Stream)(nil)
