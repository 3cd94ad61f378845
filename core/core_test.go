package core_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/backendtest"
	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// faultyBackend wraps a backend and fails selected primitives for selected
// paths.
type faultyBackend struct {
	core.Backend
	failCreate map[string]error
	failDelete map[string]error
	failOpen   map[string]error
	creates    []string
}

func newFaulty() *faultyBackend {
	return &faultyBackend{
		Backend:    billy.NewMemory(),
		failCreate: map[string]error{},
		failDelete: map[string]error{},
		failOpen:   map[string]error{},
	}
}

func (f *faultyBackend) DirectoryCreate(path string) error {
	f.creates = append(f.creates, path)
	if err, ok := f.failCreate[path]; ok {
		return err
	}
	return f.Backend.DirectoryCreate(path)
}

func (f *faultyBackend) FileDelete(path string) error {
	if err, ok := f.failDelete[path]; ok {
		return err
	}
	return f.Backend.FileDelete(path)
}

func (f *faultyBackend) OpenRead(path string, shareWrite bool) (core.Stream, error) {
	if err, ok := f.failOpen[path]; ok {
		return nil, err
	}
	return f.Backend.OpenRead(path, shareWrite)
}

func TestFSTypeString(t *testing.T) {
	assert.Equal(t, "local", core.FSTypeLocal.String())
	assert.Equal(t, "memory", core.FSTypeMemory.String())
	assert.Equal(t, "unknown", core.FSTypeUnknown.String())
}

func TestDirectoryTreeCreate_Prefixes(t *testing.T) {
	b := newFaulty()

	require.NoError(t, core.DirectoryTreeCreate(b, `/a\b/c`))
	assert.Equal(t, []string{"/a", `/a\b`, `/a\b/c`}, b.creates)

	exists, err := b.Exists("/a/b/c")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirectoryTreeCreate_FailedPrefixAborts(t *testing.T) {
	b := newFaulty()
	denied := errors.New(errors.CodePermissionDenied, "denied")
	b.failCreate["/a/b"] = denied

	err := core.DirectoryTreeCreate(b, "/a/b/c/d")
	assert.Same(t, denied, err)
	assert.Equal(t, []string{"/a", "/a/b"}, b.creates, "no further prefixes are attempted")

	exists, err := b.Exists("/a")
	require.NoError(t, err)
	assert.True(t, exists, "prefixes created before the failure are kept")
}

func TestDirectoryTreeCreate_FailureOnExistingPrefixIsTolerated(t *testing.T) {
	b := newFaulty()
	require.NoError(t, b.Backend.DirectoryCreate("/a"))
	b.failCreate["/a"] = errors.New(errors.CodeFailure, "busy")

	require.NoError(t, core.DirectoryTreeCreate(b, "/a/b"))
}

func TestDirectoryTreeDelete_StopsAtFirstFailure(t *testing.T) {
	b := newFaulty()
	require.NoError(t, core.DirectoryTreeCreate(b, "/tree/sub"))
	backendtest.WriteFile(t, b, "/tree/a.txt", []byte("a"))
	backendtest.WriteFile(t, b, "/tree/sub/b.txt", []byte("b"))
	backendtest.WriteFile(t, b, "/tree/z.txt", []byte("z"))

	stuck := errors.New(errors.CodeFailure, "stuck")
	b.failDelete["/tree/sub/b.txt"] = stuck

	err := core.DirectoryTreeDelete(b, "/tree")
	assert.Same(t, stuck, err)

	for path, want := range map[string]bool{
		"/tree/a.txt":     false,
		"/tree/sub/b.txt": true,
		"/tree/z.txt":     true,
	} {
		exists, err := b.Exists(path)
		require.NoError(t, err)
		assert.Equal(t, want, exists, path)
	}
}

func TestDirectoryTreeCopy_Aborts(t *testing.T) {
	b := newFaulty()
	require.NoError(t, core.DirectoryTreeCreate(b, "/src"))
	require.NoError(t, core.DirectoryTreeCreate(b, "/dst"))
	backendtest.WriteFile(t, b, "/src/1.txt", []byte("1"))
	backendtest.WriteFile(t, b, "/src/2.txt", []byte("2"))
	backendtest.WriteFile(t, b, "/src/3.txt", []byte("3"))

	unreadable := errors.New(errors.CodeReadFault, "unreadable")
	b.failOpen["/src/2.txt"] = unreadable

	err := core.DirectoryTreeCopy(b, "/dst", "/src", false)
	assert.Same(t, unreadable, err)

	snapshot := backendtest.Snapshot(t, b, "/dst")
	assert.Equal(t, map[string][]byte{"1.txt": []byte("1")}, snapshot)
}

func TestDirectoryTreeCopy_TrailingSeparators(t *testing.T) {
	b := newFaulty()
	require.NoError(t, core.DirectoryTreeCreate(b, "/src/nested"))
	require.NoError(t, core.DirectoryTreeCreate(b, "/dst"))
	backendtest.WriteFile(t, b, "/src/nested/file", []byte("f"))

	require.NoError(t, core.DirectoryTreeCopy(b, "/dst/", "/src/", false))
	assert.Equal(t, []byte("f"), backendtest.ReadFile(t, b, "/dst/nested/file"))
}

func TestDirectoryTreeCopy_MixedSeparators(t *testing.T) {
	b := newFaulty()
	require.NoError(t, core.DirectoryTreeCreate(b, "/src/nested"))
	require.NoError(t, core.DirectoryTreeCreate(b, "/dst"))
	backendtest.WriteFile(t, b, "/src/nested/file", []byte("f"))
	b.creates = nil

	require.NoError(t, core.DirectoryTreeCopy(b, `/dst\`, `\src\`, false))
	assert.Equal(t, []byte("f"), backendtest.ReadFile(t, b, "/dst/nested/file"))
	assert.Contains(t, b.creates, "/dst/nested")
	for _, path := range b.creates {
		assert.NotContains(t, path, `\`, "created paths use the canonical separator")
	}
}

func TestFileCopy_DestinationIsDirectory(t *testing.T) {
	b := newFaulty()
	backendtest.WriteFile(t, b, "/src", []byte("data"))
	require.NoError(t, core.DirectoryTreeCreate(b, "/dir"))

	err := core.FileCopy(b, "/dir", "/src")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidFile, errors.GetCode(err))
}

func TestMoveByCopy_KeepsSourceOnFailure(t *testing.T) {
	b := newFaulty()
	backendtest.WriteFile(t, b, "/src", []byte("data"))
	require.NoError(t, core.DirectoryTreeCreate(b, "/dir"))

	require.Error(t, core.MoveByCopy(b, "/dir", "/src"))

	exists, err := b.Exists("/src")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnumerateRecursive_PropagatesBackendErrors(t *testing.T) {
	b := newFaulty()
	err := core.EnumerateRecursive(b, "/missing", func(string, bool) error { return nil })
	assert.True(t, errors.IsNotFound(err))
}

func TestAsReader(t *testing.T) {
	b := newFaulty()
	backendtest.WriteFile(t, b, "/file", []byte("hello world"))

	s, err := b.OpenRead("/file", false)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	r := core.AsReader(s)

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello wo", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err, "a short final read is not an error")
	assert.Equal(t, "rld", string(buf[:n]))

	n, err = r.Read(buf)
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)

	n, err = r.Read(nil)
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestReadAll_FromPosition(t *testing.T) {
	b := newFaulty()
	backendtest.WriteFile(t, b, "/file", []byte("skip|rest"))

	s, err := b.OpenRead("/file", false)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.SetPosition(5))
	data, err := core.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "rest", string(data))
}

func TestReadAll_ClosedStream(t *testing.T) {
	b := newFaulty()
	backendtest.WriteFile(t, b, "/file", []byte("x"))

	s, err := b.OpenRead("/file", false)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = core.ReadAll(s)
	assert.ErrorIs(t, err, core.ErrClosed)
	assert.Equal(t, "read_all", err.(errors.StorageError).Op())
}
