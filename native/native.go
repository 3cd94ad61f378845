package native

import (
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// DefaultChunkSize is the largest transfer a single read or write system
// call is asked to perform.
const DefaultChunkSize = 64 * 1024

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// Backend implements core.Backend for the host operating system.
// It holds no per-call state and is safe for concurrent use.
type Backend struct {
	chunkSize int
	logger    *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lock contention, interrupted system
// call retries and fallbacks.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// WithChunkSize sets the largest transfer per system call.
// Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(b *Backend) {
		if n > 0 {
			b.chunkSize = n
		}
	}
}

// New creates a native backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		chunkSize: DefaultChunkSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Type returns core.FSTypeLocal.
func (b *Backend) Type() core.FSType {
	return core.FSTypeLocal
}

// OpenRead opens path for reading.
func (b *Backend) OpenRead(path string, shareWrite bool) (core.Stream, error) {
	h, err := openRead(path, shareWrite)
	if err != nil {
		return nil, err
	}

	size, err := h.Size()
	if err != nil {
		_ = h.Close()
		return nil, errors.FromOS(err, errors.CodeFailure, "open_read", path)
	}

	return newStream(h, path, false, 0, size, b.chunkSize, b.logger), nil
}

// OpenWrite opens path for writing under an exclusive advisory lock.
func (b *Backend) OpenWrite(path string, appendMode, shareRead bool) (core.Stream, error) {
	h, err := openWrite(path, appendMode, shareRead, b.logger)
	if err != nil {
		if errors.IsRetryable(err) {
			b.logger.Debug("write lock contention", zap.String("path", path))
		}
		return nil, err
	}

	var position int64
	if appendMode {
		if position, err = h.Seek(0, io.SeekEnd); err != nil {
			_ = h.Close()
			return nil, errors.FromOS(err, errors.CodeFailure, "open_write", path)
		}
	}

	return newStream(h, path, true, position, 0, b.chunkSize, b.logger), nil
}

// Exists reports whether path is a regular file or a directory.
func (b *Backend) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.FromOS(err, errors.CodeFailure, "exists", path)
	}
	return info.Mode().IsRegular() || info.IsDir(), nil
}

// GetFileInfo returns metadata for path.
func (b *Backend) GetFileInfo(path string) (core.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return core.FileInfo{}, errors.FromOS(err, errors.CodeFailure, "get_file_info", path)
	}
	return fileInfo(path, info), nil
}

func fileInfo(path string, info fs.FileInfo) core.FileInfo {
	created, accessed := fileTimes(path, info)
	size := info.Size()
	if info.IsDir() {
		size = -1
	}
	return core.FileInfo{
		CreationTime:     created,
		AccessTime:       accessed,
		ModificationTime: info.ModTime(),
		Size:             size,
		IsDirectory:      info.IsDir(),
		IsReadonly:       isReadonlyMode(info.Mode()),
		IsValid:          true,
	}
}

// isReadonlyMode checks the owner write bit rather than access(2) so the
// answer does not depend on the caller being root.
func isReadonlyMode(mode fs.FileMode) bool {
	return mode.Perm()&0o200 == 0
}

// FileSize returns the size of path, or -1 for a directory.
func (b *Backend) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.FromOS(err, errors.CodeFailure, "file_size", path)
	}
	if info.IsDir() {
		return -1, nil
	}
	return info.Size(), nil
}

// IsReadonly reports whether the owner write bit of path is cleared.
func (b *Backend) IsReadonly(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.FromOS(err, errors.CodeFailure, "is_readonly", path)
	}
	return isReadonlyMode(info.Mode()), nil
}

// SetReadonly clears every write bit of path, or restores the owner write
// bit when readonly is false. Symbolic links are left alone and their
// targets are never changed.
func (b *Backend) SetReadonly(path string, readonly bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "set_readonly", path)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil
	}

	mode := info.Mode().Perm()
	if readonly {
		mode &^= 0o222
	} else {
		mode |= 0o200
	}
	if mode == info.Mode().Perm() {
		return nil
	}

	if err := os.Chmod(path, mode); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "set_readonly", path)
	}
	return nil
}

// FileDelete removes the file at path. Directories are rejected.
func (b *Backend) FileDelete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "file_delete", path)
	}
	if info.IsDir() {
		return errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "file_delete", path)
	}
	if err := os.Remove(path); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "file_delete", path)
	}
	return nil
}

// FileMove renames source to destination, copying when they live on
// different devices.
func (b *Backend) FileMove(destination, source string) error {
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}
	if isCrossDevice(err) {
		b.logger.Debug("rename crosses devices, copying",
			zap.String("source", source),
			zap.String("destination", destination))
		return core.MoveByCopy(b, destination, source)
	}
	return errors.WithContext(errors.FromOS(err, errors.CodeFailure, "file_move", source), "destination", destination)
}

// DirectoryCreate creates the single directory path.
func (b *Backend) DirectoryCreate(path string) error {
	if err := os.Mkdir(path, dirMode); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_create", path)
	}
	return nil
}

// DirectoryDelete removes the empty directory path.
func (b *Backend) DirectoryDelete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_delete", path)
	}
	if !info.IsDir() {
		return errors.WithOp(errors.New(errors.CodeInvalidFile, "path is not a directory"), "directory_delete", path)
	}
	if err := os.Remove(path); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_delete", path)
	}
	return nil
}

// Enumerate reports the children of path in name order. Symbolic links are
// reported as files.
func (b *Backend) Enumerate(path string, visitor core.Visitor) error {
	entries, err := readDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := visitor(pathutil.Append(path, entry.Name()), entry.IsDir()); err != nil {
			return err
		}
	}
	return nil
}

// EnumerateInfo reports the children of path with their metadata. Symbolic
// links carry IsLink and describe their target; entries that cannot be
// stat'ed, such as dangling links, are reported with IsValid unset.
func (b *Backend) EnumerateInfo(path string, visitor core.InfoVisitor) error {
	entries, err := readDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := pathutil.Append(path, entry.Name())

		info := core.FileInfo{IsDirectory: entry.IsDir()}
		if stat, err := os.Stat(child); err == nil {
			info = fileInfo(child, stat)
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			info.IsLink = true
			info.IsDirectory = false
		}

		if err := visitor(child, info); err != nil {
			return err
		}
	}
	return nil
}

func readDir(path string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeFailure, "enumerate", path)
	}
	return entries, nil
}

// Compile-time interface check.
var _ core.Backend = (*Backend)(nil)
