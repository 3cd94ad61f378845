//go:build unix

package native

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/jmgilman/go/vfs/errors"
)

// advisoryLocking reports whether OpenWrite locks the file.
const advisoryLocking = true

// fdHandle is a raw file descriptor.
type fdHandle struct {
	fd int
}

func (h *fdHandle) Read(p []byte) (int, error) {
	n, err := unix.Read(h.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (h *fdHandle) Write(p []byte) (int, error) {
	n, err := unix.Write(h.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (h *fdHandle) Seek(offset int64, whence int) (int64, error) {
	return unix.Seek(h.fd, offset, whence)
}

func (h *fdHandle) Size() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(h.fd, &st); err != nil {
		return 0, err
	}
	return st.Size, nil
}

func (h *fdHandle) Sync() error {
	return unix.Fsync(h.fd)
}

func (h *fdHandle) Close() error {
	return unix.Close(h.fd)
}

func (h *fdHandle) isDir() bool {
	var st unix.Stat_t
	if err := unix.Fstat(h.fd, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}

func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

// openFD calls open(2), retrying when interrupted.
func openFD(path string, flags int, mode uint32) (int, error) {
	for {
		fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
		if err == nil {
			return fd, nil
		}
		if !isInterrupted(err) {
			return -1, err
		}
	}
}

func openRead(path string, shareWrite bool) (handle, error) {
	flags := unix.O_RDONLY
	if shareWrite {
		flags = unix.O_RDWR
	}

	fd, err := openFD(path, flags, 0)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_read", path)
	}

	h := &fdHandle{fd: fd}
	if h.isDir() {
		_ = h.Close()
		return nil, errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "open_read", path)
	}
	return h, nil
}

// openWrite opens path for writing, takes the advisory lock and truncates
// unless appending. The lock is taken before truncation so a contended
// open never destroys the holder's data.
func openWrite(path string, appendMode, shareRead bool, logger *zap.Logger) (handle, error) {
	flags := unix.O_CREAT | unix.O_WRONLY
	if shareRead {
		flags = unix.O_CREAT | unix.O_RDWR
	}

	fd, err := openFD(path, flags, fileMode)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeFailure, "open_write", path)
	}
	h := &fdHandle{fd: fd}

	if err := lock(fd); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) {
			_ = h.Close()
			return nil, errors.WithClassification(
				errors.WithOp(errors.Wrap(err, errors.CodeFailure, "file is locked by another writer"), "open_write", path),
				errors.ClassificationRetryable,
			)
		}
		logger.Debug("advisory lock unsupported, writing unlocked",
			zap.String("path", path),
			zap.Error(err))
	}

	if !appendMode {
		if err := unix.Ftruncate(fd, 0); err != nil {
			_ = h.Close()
			return nil, errors.FromOS(err, errors.CodeFailure, "open_write", path)
		}
	}

	return h, nil
}

// lock takes an exclusive, non-blocking flock, retrying when interrupted.
func lock(fd int) error {
	for {
		err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil || !isInterrupted(err) {
			return err
		}
	}
}
