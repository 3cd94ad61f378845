package metrics

import (
	"time"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Backend is a core.Backend that records metrics for another backend.
type Backend struct {
	next    core.Backend
	metrics *Metrics
	label   string
}

// Instrument wraps b. Metrics are labeled with the backend's FSType.
func Instrument(b core.Backend, m *Metrics) *Backend {
	return &Backend{next: b, metrics: m, label: b.Type().String()}
}

// Unwrap returns the instrumented backend.
func (b *Backend) Unwrap() core.Backend {
	return b.next
}

// observe records one call of op that started at start and ended with err.
func (b *Backend) observe(op string, start time.Time, err error) {
	b.metrics.operations.WithLabelValues(b.label, op, string(errors.StatusOf(err))).Inc()
	b.metrics.duration.WithLabelValues(b.label, op).Observe(time.Since(start).Seconds())
}

func (b *Backend) Type() core.FSType {
	return b.next.Type()
}

func (b *Backend) OpenRead(path string, shareWrite bool) (core.Stream, error) {
	start := time.Now()
	s, err := b.next.OpenRead(path, shareWrite)
	b.observe("open_read", start, err)
	if err != nil {
		return nil, err
	}
	return b.wrapStream(s, "read"), nil
}

func (b *Backend) OpenWrite(path string, appendMode, shareRead bool) (core.Stream, error) {
	start := time.Now()
	s, err := b.next.OpenWrite(path, appendMode, shareRead)
	b.observe("open_write", start, err)
	if err != nil {
		return nil, err
	}
	return b.wrapStream(s, "write"), nil
}

func (b *Backend) Exists(path string) (bool, error) {
	start := time.Now()
	ok, err := b.next.Exists(path)
	b.observe("exists", start, err)
	return ok, err
}

func (b *Backend) GetFileInfo(path string) (core.FileInfo, error) {
	start := time.Now()
	info, err := b.next.GetFileInfo(path)
	b.observe("get_file_info", start, err)
	return info, err
}

func (b *Backend) FileSize(path string) (int64, error) {
	start := time.Now()
	size, err := b.next.FileSize(path)
	b.observe("file_size", start, err)
	return size, err
}

func (b *Backend) IsReadonly(path string) (bool, error) {
	start := time.Now()
	ok, err := b.next.IsReadonly(path)
	b.observe("is_readonly", start, err)
	return ok, err
}

func (b *Backend) SetReadonly(path string, readonly bool) error {
	start := time.Now()
	err := b.next.SetReadonly(path, readonly)
	b.observe("set_readonly", start, err)
	return err
}

func (b *Backend) FileDelete(path string) error {
	start := time.Now()
	err := b.next.FileDelete(path)
	b.observe("file_delete", start, err)
	return err
}

func (b *Backend) FileMove(destination, source string) error {
	start := time.Now()
	err := b.next.FileMove(destination, source)
	b.observe("file_move", start, err)
	return err
}

func (b *Backend) DirectoryCreate(path string) error {
	start := time.Now()
	err := b.next.DirectoryCreate(path)
	b.observe("directory_create", start, err)
	return err
}

func (b *Backend) DirectoryDelete(path string) error {
	start := time.Now()
	err := b.next.DirectoryDelete(path)
	b.observe("directory_delete", start, err)
	return err
}

// Enumerate records the listing of path itself. Time spent in visitor is
// included, so nested recursive walks are not observed separately.
func (b *Backend) Enumerate(path string, visitor core.Visitor) error {
	start := time.Now()
	err := b.next.Enumerate(path, visitor)
	b.observe("enumerate", start, err)
	return err
}

func (b *Backend) EnumerateInfo(path string, visitor core.InfoVisitor) error {
	start := time.Now()
	err := b.next.EnumerateInfo(path, visitor)
	b.observe("enumerate_info", start, err)
	return err
}

// Compile-time interface check.
var _ core.Backend = (*Backend)(nil)
