package billy

import (
	"io"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Stream wraps billy.File to implement core.Stream.
// It stores the filename since billy.File.Name() may return different
// formats depending on the backend implementation.
type Stream struct {
	file     billy.File
	name     string
	writing  bool
	position int64
	size     int64 // read mode only

	// write mode only
	fs      billy.Basic
	fsName  string
	release func()

	closed   bool
	closeErr error
}

func newReadStream(f billy.File, name string, size int64) *Stream {
	return &Stream{file: f, name: name, size: size}
}

func newWriteStream(f billy.File, name string, position int64, fs billy.Basic, fsName string, release func()) *Stream {
	return &Stream{
		file:     f,
		name:     name,
		writing:  true,
		position: position,
		fs:       fs,
		fsName:   fsName,
		release:  release,
	}
}

// Read fills p from the current position, stopping at the size captured at
// open.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, core.ClosedError("read", s.name)
	}
	if s.writing {
		return 0, errors.WithOp(errors.New(errors.CodeFailure, "stream is open for writing"), "read", s.name)
	}
	if _, err := s.file.Seek(s.position, io.SeekStart); err != nil {
		return 0, errors.FromOS(err, errors.CodeReadFault, "read", s.name)
	}

	want := len(p)
	if remaining := s.size - s.position; int64(want) > remaining {
		want = int(max(remaining, 0))
	}

	n, err := io.ReadFull(s.file, p[:want])
	s.position += int64(n)
	switch {
	case err == nil && n < len(p):
		return n, errors.WithOp(errors.EndOfStream(n), "read", s.name)
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, errors.WithOp(errors.EndOfStream(n), "read", s.name)
	default:
		return n, errors.FromOS(err, errors.CodeReadFault, "read", s.name)
	}
}

// Write writes all of p at the current position.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, core.ClosedError("write", s.name)
	}
	if !s.writing {
		return 0, errors.WithOp(errors.New(errors.CodeFailure, "stream is open for reading"), "write", s.name)
	}
	if _, err := s.file.Seek(s.position, io.SeekStart); err != nil {
		return 0, errors.FromOS(err, errors.CodeWriteFault, "write", s.name)
	}

	n, err := s.file.Write(p)
	s.position += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n, errors.FromOS(err, errors.CodeWriteFault, "write", s.name)
	}
	return n, nil
}

// Flush syncs the file when the underlying billy.File supports it.
// For backends without Sync (e.g., memfs), this is a no-op.
func (s *Stream) Flush() error {
	if s.closed {
		return core.ClosedError("flush", s.name)
	}
	if syncer, ok := s.file.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			return errors.FromOS(err, errors.CodeWriteFault, "flush", s.name)
		}
	}
	return nil
}

// Size returns the cached size in read mode and the live size in write mode.
func (s *Stream) Size() (int64, error) {
	if s.closed {
		return 0, core.ClosedError("size", s.name)
	}
	if !s.writing {
		return s.size, nil
	}
	info, err := s.fs.Stat(s.fsName)
	if err != nil {
		return 0, errors.FromOS(err, errors.CodeFailure, "size", s.name)
	}
	return info.Size(), nil
}

// Position returns the tracked offset.
func (s *Stream) Position() int64 {
	return s.position
}

// SetPosition moves the tracked offset. Read streams clamp it to the size
// captured at open.
func (s *Stream) SetPosition(offset int64) error {
	_, err := s.Seek(offset, io.SeekStart)
	return err
}

// Seek implements io.Seeker over the tracked offset.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, core.ClosedError("seek", s.name)
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = s.position
	case io.SeekEnd:
		size, err := s.Size()
		if err != nil {
			return s.position, err
		}
		base = size
	default:
		return s.position, errors.WithOp(errors.Newf(errors.CodeInvalidInput, "invalid whence %d", whence), "seek", s.name)
	}

	target := base + offset
	if target < 0 {
		return s.position, errors.WithOp(errors.Newf(errors.CodeInvalidInput, "negative position %d", target), "seek", s.name)
	}
	if !s.writing && target > s.size {
		target = s.size
	}
	s.position = target
	return target, nil
}

// Name returns the path the stream was opened with.
func (s *Stream) Name() string {
	return s.name
}

// Close releases the file and, for write streams, the path lock.
// Only the first call has an effect; later calls return its result.
func (s *Stream) Close() error {
	if s.closed {
		return s.closeErr
	}
	s.closed = true

	err := s.file.Close()
	if s.release != nil {
		s.release()
	}
	if err != nil {
		s.closeErr = errors.FromOS(err, errors.CodeFailure, "close", s.name)
	}
	return s.closeErr
}

// Compile-time interface check.
var _ core.Stream = (*Stream)(nil)
