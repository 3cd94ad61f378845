package archive

import (
	"bufio"
	"encoding/binary"
	"math"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Writer encodes values into a write stream. Data is buffered until Flush,
// which must be called before the stream is closed.
type Writer struct {
	s   core.Stream
	bw  *bufio.Writer
	err error
}

// NewWriter returns a Writer over s with DefaultBufferSize.
func NewWriter(s core.Stream) *Writer {
	return NewWriterSize(s, DefaultBufferSize)
}

// NewWriterSize returns a Writer over s buffering up to size bytes.
func NewWriterSize(s core.Stream, size int) *Writer {
	return &Writer{s: s, bw: bufio.NewWriterSize(s, size)}
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Stream returns the underlying stream.
func (w *Writer) Stream() core.Stream {
	return w.s
}

// Position returns the offset the next encoded byte will be written at.
func (w *Writer) Position() int64 {
	return w.s.Position() + int64(w.bw.Buffered())
}

// Size flushes buffered data and returns the live size of the stream.
func (w *Writer) Size() (int64, error) {
	if err := w.flushBuffer(); err != nil {
		return 0, err
	}
	return w.s.Size()
}

// SetPosition flushes buffered data and moves to offset.
func (w *Writer) SetPosition(offset int64) error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	if err := w.s.SetPosition(offset); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Write buffers all of p.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.bw.Write(p)
	if err != nil {
		w.err = errors.WithOp(err, "archive_write", w.s.Name())
	}
	return n, w.err
}

func (w *Writer) fixed(buf []byte) {
	_, _ = w.Write(buf)
}

// WriteBool encodes v as one byte.
func (w *Writer) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.fixed([]byte{b})
}

// WriteUint8 encodes one byte.
func (w *Writer) WriteUint8(v uint8) {
	w.fixed([]byte{v})
}

func (w *Writer) WriteUint16(v uint16) {
	w.fixed(binary.LittleEndian.AppendUint16(nil, v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.fixed(binary.LittleEndian.AppendUint32(nil, v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.fixed(binary.LittleEndian.AppendUint64(nil, v))
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteBytes encodes p without a length prefix.
func (w *Writer) WriteBytes(p []byte) {
	_, _ = w.Write(p)
}

// WriteString encodes s with a uint32 length prefix.
func (w *Writer) WriteString(s string) {
	if len(s) > MaxStringLength {
		if w.err == nil {
			w.err = errors.WithOp(
				errors.Newf(errors.CodeInvalidInput, "string length %d exceeds limit %d", len(s), MaxStringLength),
				"archive_write", w.s.Name(),
			)
		}
		return
	}
	w.WriteUint32(uint32(len(s)))
	if w.err != nil {
		return
	}
	if _, err := w.bw.WriteString(s); err != nil {
		w.err = errors.WithOp(err, "archive_write", w.s.Name())
	}
}

func (w *Writer) flushBuffer() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = errors.WithOp(err, "archive_flush", w.s.Name())
	}
	return w.err
}

// Flush writes buffered data to the stream and commits it to storage.
func (w *Writer) Flush() error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	if err := w.s.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

// Close flushes buffered data and closes the underlying stream. The stream
// is closed even when the flush fails; the first error is returned.
func (w *Writer) Close() error {
	flushErr := w.Flush()
	closeErr := w.s.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
