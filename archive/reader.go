package archive

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// DefaultBufferSize is the buffer size used by NewReader and NewWriter.
const DefaultBufferSize = 64 * 1024

// MaxStringLength bounds the length prefix ReadString accepts.
const MaxStringLength = 16 * 1024 * 1024

// Reader decodes values from a read stream.
type Reader struct {
	s   core.Stream
	br  *bufio.Reader
	err error
}

// NewReader returns a Reader over s with DefaultBufferSize.
func NewReader(s core.Stream) *Reader {
	return NewReaderSize(s, DefaultBufferSize)
}

// NewReaderSize returns a Reader over s buffering up to size bytes.
func NewReaderSize(s core.Stream, size int) *Reader {
	return &Reader{s: s, br: bufio.NewReaderSize(core.AsReader(s), size)}
}

// Err returns the first error encountered.
func (r *Reader) Err() error {
	return r.err
}

// Stream returns the underlying stream.
func (r *Reader) Stream() core.Stream {
	return r.s
}

// Position returns the offset of the next byte to be decoded.
func (r *Reader) Position() int64 {
	return r.s.Position() - int64(r.br.Buffered())
}

// Size returns the size of the underlying stream.
func (r *Reader) Size() (int64, error) {
	return r.s.Size()
}

// SetPosition discards buffered data and moves to offset.
func (r *Reader) SetPosition(offset int64) error {
	if r.err != nil {
		return r.err
	}
	if err := r.s.SetPosition(offset); err != nil {
		r.err = err
		return err
	}
	r.br.Reset(core.AsReader(r.s))
	return nil
}

// Read fills p completely. A stream that ends first yields
// errors.CodeEndOfStream.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := io.ReadFull(r.br, p)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = errors.EndOfStream(n)
		}
		r.err = errors.WithOp(err, "archive_read", r.s.Name())
	}
	return n, r.err
}

func (r *Reader) fixed(n int) []byte {
	var buf [8]byte
	if _, err := r.Read(buf[:n]); err != nil {
		return make([]byte, n)
	}
	return buf[:n]
}

// ReadBool decodes one byte; any non-zero value is true.
func (r *Reader) ReadBool() bool {
	return r.fixed(1)[0] != 0
}

// ReadUint8 decodes one byte.
func (r *Reader) ReadUint8() uint8 {
	return r.fixed(1)[0]
}

func (r *Reader) ReadUint16() uint16 {
	return binary.LittleEndian.Uint16(r.fixed(2))
}

func (r *Reader) ReadUint32() uint32 {
	return binary.LittleEndian.Uint32(r.fixed(4))
}

func (r *Reader) ReadUint64() uint64 {
	return binary.LittleEndian.Uint64(r.fixed(8))
}

func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

func (r *Reader) ReadInt64() int64 {
	return int64(r.ReadUint64())
}

func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(r.ReadUint32())
}

func (r *Reader) ReadFloat64() float64 {
	return math.Float64frombits(r.ReadUint64())
}

// ReadBytes decodes exactly n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if n < 0 {
		r.fail(errors.Newf(errors.CodeInvalidInput, "negative length %d", n))
		return nil
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return nil
	}
	return buf
}

// ReadString decodes a string with a uint32 length prefix.
func (r *Reader) ReadString() string {
	n := r.ReadUint32()
	if r.err != nil {
		return ""
	}
	if n > MaxStringLength {
		r.fail(errors.Newf(errors.CodeNotEnoughMemory, "string length %d exceeds limit %d", n, MaxStringLength))
		return ""
	}
	return string(r.ReadBytes(int(n)))
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = errors.WithOp(err, "archive_read", r.s.Name())
	}
}

// Close closes the underlying stream.
func (r *Reader) Close() error {
	return r.s.Close()
}
