//go:build !unix

package native

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jmgilman/go/vfs/errors"
)

// advisoryLocking reports whether OpenWrite locks the file.
const advisoryLocking = false

// fileHandle is an *os.File. Targets without flock write unlocked.
type fileHandle struct {
	f *os.File
}

func (h *fileHandle) Read(p []byte) (int, error) {
	n, err := h.f.Read(p)
	if n == 0 && err != nil && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

func (h *fileHandle) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

func (h *fileHandle) Seek(offset int64, whence int) (int64, error) {
	return h.f.Seek(offset, whence)
}

func (h *fileHandle) Size() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *fileHandle) Sync() error {
	return h.f.Sync()
}

func (h *fileHandle) Close() error {
	return h.f.Close()
}

func isInterrupted(error) bool {
	return false
}

func isCrossDevice(error) bool {
	return false
}

func openRead(path string, shareWrite bool) (handle, error) {
	flags := os.O_RDONLY
	if shareWrite {
		flags = os.O_RDWR
	}

	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeInvalidPath, "open_read", path)
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, errors.WithOp(errors.New(errors.CodeInvalidFile, "path is a directory"), "open_read", path)
	}
	return &fileHandle{f: f}, nil
}

func openWrite(path string, appendMode, shareRead bool, logger *zap.Logger) (handle, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if shareRead {
		flags = os.O_CREATE | os.O_RDWR
	}
	if !appendMode {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		return nil, errors.FromOS(err, errors.CodeFailure, "open_write", path)
	}
	logger.Debug("advisory lock unsupported, writing unlocked", zap.String("path", path))
	return &fileHandle{f: f}, nil
}
