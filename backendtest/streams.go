package backendtest

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

func testStreams(t *testing.T, newBackend Factory, config Config) {
	runSubtests(t, "Streams", newBackend, config, []subtest{
		{"RoundTrip", testStreamRoundTrip},
		{"EmptyFile", testStreamEmptyFile},
		{"ShortReadAtEnd", testStreamShortRead},
		{"Truncate", testStreamTruncate},
		{"AppendMode", testStreamAppend},
		{"Positioning", testStreamPositioning},
		{"WriteSizeIsLive", testStreamWriteSize},
		{"WrongDirection", testStreamWrongDirection},
		{"Close", testStreamClose},
		{"OpenErrors", testStreamOpenErrors},
	})
}

func testStreamRoundTrip(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "data.bin")
	data := Pattern(300_000)

	s, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	n, err := s.Write(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, int64(len(data)), s.Position())
	require.NoError(t, s.Flush())
	assert.Equal(t, p, s.Name())
	require.NoError(t, s.Close())

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	size, err := r.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	got := make([]byte, len(data))
	n, err = r.Read(got)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, got)
}

func testStreamEmptyFile(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "empty")
	WriteFile(t, b, p, nil)

	size, err := b.FileSize(p)
	require.NoError(t, err)
	assert.Zero(t, size)

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	n, err := r.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.True(t, errors.IsEndOfStream(err), "got %v", err)
}

func testStreamShortRead(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "short.txt")
	WriteFile(t, b, p, []byte("hello"))

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	assert.Equal(t, 5, n)
	assert.True(t, errors.IsEndOfStream(err), "got %v", err)
	assert.Equal(t, "hello", string(buf[:n]))
	assert.Equal(t, int64(5), r.Position())

	n, err = r.Read(buf)
	assert.Zero(t, n)
	assert.True(t, errors.IsEndOfStream(err), "got %v", err)
	assert.ErrorIs(t, err, io.EOF)
}

func testStreamTruncate(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "truncate.txt")
	WriteFile(t, b, p, []byte("a much longer original body"))
	WriteFile(t, b, p, []byte("short"))

	assert.Equal(t, "short", string(ReadFile(t, b, p)))
}

func testStreamAppend(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "append.log")
	WriteFile(t, b, p, []byte("first\n"))

	s, err := b.OpenWrite(p, true, false)
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.Position())
	_, err = s.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, "first\nsecond\n", string(ReadFile(t, b, p)))

	// Appending to a missing file creates it.
	fresh := pathutil.Append(root, "fresh.log")
	s, err = b.OpenWrite(fresh, true, false)
	require.NoError(t, err)
	assert.Zero(t, s.Position())
	require.NoError(t, s.Close())

	exists, err := b.Exists(fresh)
	require.NoError(t, err)
	assert.True(t, exists)
}

func testStreamPositioning(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "seek.txt")
	WriteFile(t, b, p, []byte("0123456789"))

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	require.NoError(t, r.SetPosition(4))
	buf := make([]byte, 3)
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "456", string(buf))
	assert.Equal(t, int64(7), r.Position())

	pos, err := r.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	pos, err = r.Seek(-3, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos)

	// Read streams never move past their size.
	require.NoError(t, r.SetPosition(100))
	assert.Equal(t, int64(10), r.Position())

	err = r.SetPosition(-1)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidInput), "got %v", err)
	assert.Equal(t, int64(10), r.Position())

	_, err = r.Seek(0, 42)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidInput), "got %v", err)

	// Overwrite in the middle of a file through a write stream.
	w, err := b.OpenWrite(p, true, false)
	require.NoError(t, err)
	require.NoError(t, w.SetPosition(2))
	_, err = w.Write([]byte("ab"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "01ab456789", string(ReadFile(t, b, p)))
}

func testStreamWriteSize(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "grow.bin")

	s, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	size, err := s.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	_, err = s.Write(Pattern(1000))
	require.NoError(t, err)
	require.NoError(t, s.Flush())

	size, err = s.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), size)
}

func testStreamWrongDirection(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "direction.txt")

	w, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	_, err = w.Read(make([]byte, 1))
	assert.Error(t, err)
	require.NoError(t, w.Close())

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	n, err := r.Write([]byte("x"))
	assert.Zero(t, n)
	assert.Error(t, err)
}

func testStreamClose(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "closed.txt")

	s, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second Close returns the first result")

	_, err = s.Write([]byte("late"))
	assert.ErrorIs(t, err, core.ErrClosed)
	assert.ErrorIs(t, s.Flush(), core.ErrClosed)
	_, err = s.Size()
	assert.ErrorIs(t, err, core.ErrClosed)

	r, err := b.OpenRead(p, false)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	_, err = r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, core.ErrClosed)
	_, err = r.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, core.ErrClosed)
}

func testStreamOpenErrors(t *testing.T, b core.Backend, root string, _ Config) {
	_, err := b.OpenRead(pathutil.Append(root, "missing.txt"), false)
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	dir := pathutil.Append(root, "dir")
	require.NoError(t, b.DirectoryCreate(dir))

	_, err = b.OpenRead(dir, false)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidFile), "got %v", err)

	_, err = b.OpenWrite(dir, false, false)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidFile), "got %v", err)

	_, err = b.OpenWrite(pathutil.Append(root, "no/such/parent.txt"), false, false)
	assert.Error(t, err)
}
