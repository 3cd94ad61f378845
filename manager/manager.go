package manager

import (
	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/archive"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// DefaultMaxFileSize bounds the files ReadText and ReadBinary load into
// memory.
const DefaultMaxFileSize int64 = 1 << 30

// Manager provides layout-aware file access over a backend.
type Manager struct {
	backend     core.Backend
	layout      *Layout
	logger      *zap.Logger
	maxFileSize int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for layout and whole-file operations.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMaxFileSize sets the largest file ReadText and ReadBinary accept.
// Larger files fail with errors.CodeNotEnoughMemory.
func WithMaxFileSize(n int64) Option {
	return func(m *Manager) {
		m.maxFileSize = n
	}
}

// New creates a Manager for layout over b.
func New(b core.Backend, layout *Layout, opts ...Option) *Manager {
	m := &Manager{
		backend:     b,
		layout:      layout,
		logger:      zap.NewNop(),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.logger.Debug("layout resolved",
		zap.String("root", layout.Root),
		zap.String("engine", layout.Engine.Root),
		zap.String("project", layout.Project.Root),
		zap.String("user_settings", layout.UserSettings))
	return m
}

// Layout returns the directory taxonomy.
func (m *Manager) Layout() *Layout {
	return m.layout
}

// Backend returns the backend files are accessed through.
func (m *Manager) Backend() core.Backend {
	return m.backend
}

// OpenRead opens path for reading.
func (m *Manager) OpenRead(path string, shareWrite bool) (core.Stream, error) {
	return m.backend.OpenRead(path, shareWrite)
}

// OpenWrite opens path for writing.
func (m *Manager) OpenWrite(path string, appendMode, shareRead bool) (core.Stream, error) {
	return m.backend.OpenWrite(path, appendMode, shareRead)
}

// CreateReader opens path and wraps it in an archive.Reader. Closing the
// reader closes the stream.
func (m *Manager) CreateReader(path string, shareWrite bool) (*archive.Reader, error) {
	s, err := m.backend.OpenRead(path, shareWrite)
	if err != nil {
		return nil, err
	}
	return archive.NewReader(s), nil
}

// CreateWriter opens path and wraps it in an archive.Writer. Closing the
// writer flushes it and closes the stream.
func (m *Manager) CreateWriter(path string, appendMode, shareRead bool) (*archive.Writer, error) {
	s, err := m.backend.OpenWrite(path, appendMode, shareRead)
	if err != nil {
		return nil, err
	}
	return archive.NewWriter(s), nil
}

// ReadText returns the content of path as a string.
func (m *Manager) ReadText(path string) (string, error) {
	data, err := m.ReadBinary(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText replaces the content of path with content.
func (m *Manager) WriteText(path, content string) error {
	return m.write(path, []byte(content), false, "write_text")
}

// ReadBinary returns the content of path. The size reported at open is
// read with a single call; a file that shrinks meanwhile fails with
// errors.CodeEndOfStream.
func (m *Manager) ReadBinary(path string) (data []byte, err error) {
	s, err := m.backend.OpenRead(path, false)
	if err != nil {
		return nil, errors.WithOp(errors.Wrap(err, errors.CodeInvalidPath, "failed to open file"), "read_binary", path)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			data, err = nil, closeErr
		}
	}()

	size, err := s.Size()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errors.WithOp(errors.Newf(errors.CodeInvalidFile, "file reports negative size %d", size), "read_binary", path)
	}
	if size > m.maxFileSize || int64(int(size)) != size {
		return nil, errors.WithContext(
			errors.WithOp(errors.Newf(errors.CodeNotEnoughMemory, "file size %d exceeds limit %d", size, m.maxFileSize), "read_binary", path),
			"size", size,
		)
	}

	data = make([]byte, size)
	if size > 0 {
		if _, err := s.Read(data); err != nil {
			return nil, err
		}
	}

	m.logger.Debug("read file", zap.String("path", path), zap.Int64("size", size))
	return data, nil
}

// WriteBinary replaces the content of path with data.
func (m *Manager) WriteBinary(path string, data []byte) error {
	return m.write(path, data, false, "write_binary")
}

// AppendBinary appends data to path, creating it when absent.
func (m *Manager) AppendBinary(path string, data []byte) error {
	return m.write(path, data, true, "append_binary")
}

func (m *Manager) write(path string, data []byte, appendMode bool, op string) (err error) {
	s, err := m.backend.OpenWrite(path, appendMode, false)
	if err != nil {
		return errors.WithOp(errors.Wrap(err, errors.CodeInvalidPath, "failed to open file"), op, path)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := s.Write(data); err != nil {
		return err
	}

	m.logger.Debug("wrote file", zap.String("path", path), zap.Int("size", len(data)), zap.Bool("append", appendMode))
	return nil
}
