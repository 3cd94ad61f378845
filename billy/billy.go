package billy

import (
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
	writeBits       = 0o222
)

// Backend adapts a billy.Filesystem to core.Backend.
type Backend struct {
	bfs    billy.Filesystem
	fsType core.FSType
	locks  *lockTable
	logger *zap.Logger
}

// Option configures backend creation.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for lock contention and open failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New wraps an existing billy.Filesystem.
func New(bfs billy.Filesystem, fsType core.FSType, opts ...Option) *Backend {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Backend{
		bfs:    bfs,
		fsType: fsType,
		locks:  newLockTable(),
		logger: cfg.logger,
	}
}

// NewLocal creates a backend over the local file system rooted at root.
// Every path is resolved inside root.
func NewLocal(root string, opts ...Option) *Backend {
	return New(osfs.New(root), core.FSTypeLocal, opts...)
}

// NewMemory creates an empty in-memory backend.
func NewMemory(opts ...Option) *Backend {
	return New(memfs.New(), core.FSTypeMemory, opts...)
}

// Unwrap returns the underlying billy.Filesystem.
func (b *Backend) Unwrap() billy.Filesystem {
	return b.bfs
}

// Type returns the underlying backend type.
func (b *Backend) Type() core.FSType {
	return b.fsType
}

// normalize converts paths to the slash-separated, cleaned form billy expects.
func normalize(p string) string {
	return path.Clean(pathutil.Normalize(p))
}

// OpenRead opens p for reading. shareWrite has no effect on this backend.
func (b *Backend) OpenRead(p string, _ bool) (core.Stream, error) {
	name := normalize(p)

	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_read", p)
	}
	if info.IsDir() {
		return nil, errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "open_read", p)
	}

	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_read", p)
	}

	return newReadStream(f, p, info.Size()), nil
}

// OpenWrite opens p for writing, creating it when absent. The path is locked
// against other writers on this Backend until the stream is closed.
func (b *Backend) OpenWrite(p string, appendMode, _ bool) (core.Stream, error) {
	name := normalize(p)

	if info, err := b.bfs.Stat(name); err == nil && info.IsDir() {
		return nil, errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "open_write", p)
	}
	if parent := path.Dir(name); parent != "." && parent != "/" {
		if _, err := b.bfs.Stat(parent); err != nil {
			return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_write", p)
		}
	}

	if !b.locks.tryLock(name) {
		b.logger.Debug("write lock contention", zap.String("path", p))
		return nil, errors.WithClassification(
			errors.WithOp(errors.New(errors.CodeFailure, "file is locked by another writer"), "open_write", p),
			errors.ClassificationRetryable,
		)
	}

	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE, defaultFileMode)
	if err != nil {
		b.locks.unlock(name)
		return nil, errors.FromOS(err, errors.CodeFailure, "open_write", p)
	}

	var position int64
	if appendMode {
		position, err = f.Seek(0, io.SeekEnd)
	} else {
		err = f.Truncate(0)
	}
	if err != nil {
		_ = f.Close()
		b.locks.unlock(name)
		return nil, errors.FromOS(err, errors.CodeWriteFault, "open_write", p)
	}

	return newWriteStream(f, p, position, b.bfs, name, func() { b.locks.unlock(name) }), nil
}

// Exists reports whether p is an existing regular file or directory.
func (b *Backend) Exists(p string) (bool, error) {
	info, err := b.bfs.Stat(normalize(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.FromOS(err, errors.CodeFailure, "exists", p)
	}
	return info.Mode().IsRegular() || info.IsDir(), nil
}

// GetFileInfo returns metadata for p. billy only tracks modification time,
// which is reported for all three timestamps.
func (b *Backend) GetFileInfo(p string) (core.FileInfo, error) {
	info, err := b.bfs.Stat(normalize(p))
	if err != nil {
		return core.FileInfo{}, errors.FromOS(err, errors.CodeFailure, "get_file_info", p)
	}
	return toFileInfo(info), nil
}

func toFileInfo(info fs.FileInfo) core.FileInfo {
	size := info.Size()
	if info.IsDir() {
		size = -1
	}
	return core.FileInfo{
		CreationTime:     info.ModTime(),
		AccessTime:       info.ModTime(),
		ModificationTime: info.ModTime(),
		Size:             size,
		IsDirectory:      info.IsDir(),
		IsReadonly:       info.Mode().Perm()&0o200 == 0,
		IsValid:          true,
		IsLink:           info.Mode()&fs.ModeSymlink != 0,
	}
}

// FileSize returns the size of p, or -1 when p is a directory.
func (b *Backend) FileSize(p string) (int64, error) {
	info, err := b.GetFileInfo(p)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

// IsReadonly reports whether the owner write bit of p is cleared.
func (b *Backend) IsReadonly(p string) (bool, error) {
	info, err := b.bfs.Stat(normalize(p))
	if err != nil {
		return false, errors.FromOS(err, errors.CodeFailure, "is_readonly", p)
	}
	return info.Mode().Perm()&0o200 == 0, nil
}

// SetReadonly sets or clears the write bits of p. Symbolic links are left
// alone. It returns errors.CodeNotImplemented when a change is needed and
// the underlying file system cannot change modes.
func (b *Backend) SetReadonly(p string, readonly bool) error {
	name := normalize(p)
	info, err := b.bfs.Lstat(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "set_readonly", p)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil
	}

	mode := info.Mode().Perm()
	if readonly {
		mode &^= writeBits
	} else {
		mode |= 0o200
	}
	if mode == info.Mode().Perm() {
		return nil
	}

	changer, ok := b.bfs.(billy.Change)
	if !ok {
		return errors.WithOp(errors.New(errors.CodeNotImplemented, "file system cannot change modes"), "set_readonly", p)
	}
	if err := changer.Chmod(name, mode); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "set_readonly", p)
	}
	return nil
}

// FileDelete removes the regular file or symbolic link p.
func (b *Backend) FileDelete(p string) error {
	name := normalize(p)
	info, err := b.bfs.Lstat(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "file_delete", p)
	}
	if info.IsDir() {
		return errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "file_delete", p)
	}
	if err := b.bfs.Remove(name); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "file_delete", p)
	}
	return nil
}

// FileMove renames source to destination.
func (b *Backend) FileMove(destination, source string) error {
	if err := b.bfs.Rename(normalize(source), normalize(destination)); err != nil {
		return errors.WithContext(errors.FromOS(err, errors.CodeFailure, "file_move", source), "destination", destination)
	}
	return nil
}

// DirectoryCreate creates the single directory p. Unlike MkdirAll, it fails
// when p exists or its parent does not.
func (b *Backend) DirectoryCreate(p string) error {
	name := normalize(p)
	if _, err := b.bfs.Stat(name); err == nil {
		return errors.WithOp(errors.New(errors.CodeAlreadyExists, "path already exists"), "directory_create", p)
	}
	if parent := path.Dir(name); parent != "." && parent != "/" {
		info, err := b.bfs.Stat(parent)
		if err != nil {
			return errors.FromOS(err, errors.CodeFailure, "directory_create", p)
		}
		if !info.IsDir() {
			return errors.WithOp(errors.New(errors.CodeInvalidFile, "parent is not a directory"), "directory_create", p)
		}
	}
	if err := b.bfs.MkdirAll(name, defaultDirMode); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_create", p)
	}
	return nil
}

// DirectoryDelete removes the empty directory p.
func (b *Backend) DirectoryDelete(p string) error {
	name := normalize(p)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_delete", p)
	}
	if !info.IsDir() {
		return errors.WithOp(errors.New(errors.CodeInvalidFile, "path is not a directory"), "directory_delete", p)
	}
	entries, err := b.bfs.ReadDir(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_delete", p)
	}
	if len(entries) > 0 {
		return errors.WithOp(errors.New(errors.CodeFailure, "directory is not empty"), "directory_delete", p)
	}
	if err := b.bfs.Remove(name); err != nil {
		return errors.FromOS(err, errors.CodeFailure, "directory_delete", p)
	}
	return nil
}

// Enumerate reports the children of p in name order.
func (b *Backend) Enumerate(p string, visitor core.Visitor) error {
	return b.EnumerateInfo(p, func(child string, info core.FileInfo) error {
		return visitor(child, info.IsDirectory)
	})
}

// EnumerateInfo reports the children of p with their metadata.
func (b *Backend) EnumerateInfo(p string, visitor core.InfoVisitor) error {
	name := normalize(p)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "enumerate", p)
	}
	if !info.IsDir() {
		return errors.WithOp(errors.New(errors.CodeInvalidFile, "path is not a directory"), "enumerate", p)
	}

	entries, err := b.bfs.ReadDir(name)
	if err != nil {
		return errors.FromOS(err, errors.CodeFailure, "enumerate", p)
	}
	slices.SortFunc(entries, func(x, y fs.FileInfo) int {
		return strings.Compare(x.Name(), y.Name())
	})

	for _, entry := range entries {
		if name := entry.Name(); name == "." || name == ".." {
			continue
		}
		if err := visitor(pathutil.Append(p, entry.Name()), toFileInfo(entry)); err != nil {
			return err
		}
	}
	return nil
}

// Compile-time interface check.
var _ core.Backend = (*Backend)(nil)
