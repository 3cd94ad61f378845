package backendtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

func testPrimitives(t *testing.T, newBackend Factory, config Config) {
	runSubtests(t, "Primitives", newBackend, config, []subtest{
		{"Exists", testExists},
		{"FileInfo", testFileInfo},
		{"Readonly", testReadonly},
		{"FileDelete", testFileDelete},
		{"FileMove", testFileMove},
		{"DirectoryCreate", testDirectoryCreate},
		{"DirectoryDelete", testDirectoryDelete},
		{"Enumerate", testEnumerate},
		{"EnumerateInfo", testEnumerateInfo},
	})
}

func testExists(t *testing.T, b core.Backend, root string, _ Config) {
	file := pathutil.Append(root, "file.txt")
	dir := pathutil.Append(root, "dir")
	WriteFile(t, b, file, []byte("x"))
	require.NoError(t, b.DirectoryCreate(dir))

	for _, p := range []string{root, file, dir} {
		exists, err := b.Exists(p)
		require.NoError(t, err)
		assert.True(t, exists, p)
	}

	exists, err := b.Exists(pathutil.Append(root, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func testFileInfo(t *testing.T, b core.Backend, root string, _ Config) {
	file := pathutil.Append(root, "info.txt")
	dir := pathutil.Append(root, "dir")
	WriteFile(t, b, file, []byte("twelve bytes"))
	require.NoError(t, b.DirectoryCreate(dir))

	info, err := b.GetFileInfo(file)
	require.NoError(t, err)
	assert.True(t, info.IsValid)
	assert.False(t, info.IsDirectory)
	assert.Equal(t, int64(12), info.Size)
	assert.False(t, info.ModificationTime.IsZero())

	size, err := b.FileSize(file)
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	info, err = b.GetFileInfo(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)
	assert.Equal(t, int64(-1), info.Size)

	size, err = b.FileSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), size)

	_, err = b.GetFileInfo(pathutil.Append(root, "missing"))
	assert.True(t, errors.IsNotFound(err), "got %v", err)
	_, err = b.FileSize(pathutil.Append(root, "missing"))
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testReadonly(t *testing.T, b core.Backend, root string, config Config) {
	if !config.Readonly {
		t.Skip("backend does not support write protection")
	}

	p := pathutil.Append(root, "protected.txt")
	WriteFile(t, b, p, []byte("x"))

	readonly, err := b.IsReadonly(p)
	require.NoError(t, err)
	assert.False(t, readonly)

	err = b.SetReadonly(p, true)
	skipIfNotImplemented(t, err)
	require.NoError(t, err)

	readonly, err = b.IsReadonly(p)
	require.NoError(t, err)
	assert.True(t, readonly)

	info, err := b.GetFileInfo(p)
	require.NoError(t, err)
	assert.True(t, info.IsReadonly)

	// Setting the current state again is a no-op.
	require.NoError(t, b.SetReadonly(p, true))

	require.NoError(t, b.SetReadonly(p, false))
	readonly, err = b.IsReadonly(p)
	require.NoError(t, err)
	assert.False(t, readonly)

	_, err = b.IsReadonly(pathutil.Append(root, "missing"))
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testFileDelete(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "doomed.txt")
	WriteFile(t, b, p, []byte("x"))

	require.NoError(t, b.FileDelete(p))
	exists, err := b.Exists(p)
	require.NoError(t, err)
	assert.False(t, exists)

	err = b.FileDelete(p)
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	dir := pathutil.Append(root, "dir")
	require.NoError(t, b.DirectoryCreate(dir))
	err = b.FileDelete(dir)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidFile), "got %v", err)
}

func testFileMove(t *testing.T, b core.Backend, root string, _ Config) {
	src := pathutil.Append(root, "src.txt")
	dst := pathutil.Append(root, "dst.txt")
	WriteFile(t, b, src, []byte("moving"))

	require.NoError(t, b.FileMove(dst, src))

	exists, err := b.Exists(src)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "moving", string(ReadFile(t, b, dst)))

	err = b.FileMove(dst, pathutil.Append(root, "missing"))
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testDirectoryCreate(t *testing.T, b core.Backend, root string, _ Config) {
	dir := pathutil.Append(root, "single")
	require.NoError(t, b.DirectoryCreate(dir))

	info, err := b.GetFileInfo(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)

	err = b.DirectoryCreate(dir)
	assert.True(t, errors.IsStatus(err, errors.CodeAlreadyExists), "got %v", err)

	// Only one level is created at a time.
	err = b.DirectoryCreate(pathutil.Append(root, "a/b/c"))
	assert.Error(t, err)
	exists, err := b.Exists(pathutil.Append(root, "a"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func testDirectoryDelete(t *testing.T, b core.Backend, root string, _ Config) {
	dir := pathutil.Append(root, "dir")
	require.NoError(t, b.DirectoryCreate(dir))
	WriteFile(t, b, pathutil.Append(dir, "child"), []byte("x"))

	err := b.DirectoryDelete(dir)
	assert.Error(t, err, "non-empty directories are kept")

	require.NoError(t, b.FileDelete(pathutil.Append(dir, "child")))
	require.NoError(t, b.DirectoryDelete(dir))

	exists, err := b.Exists(dir)
	require.NoError(t, err)
	assert.False(t, exists)

	file := pathutil.Append(root, "file")
	WriteFile(t, b, file, []byte("x"))
	err = b.DirectoryDelete(file)
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidFile), "got %v", err)
}

func testEnumerate(t *testing.T, b core.Backend, root string, _ Config) {
	WriteFile(t, b, pathutil.Append(root, "c.txt"), []byte("c"))
	WriteFile(t, b, pathutil.Append(root, "a.txt"), []byte("a"))
	require.NoError(t, b.DirectoryCreate(pathutil.Append(root, "b")))
	WriteFile(t, b, pathutil.Append(root, "b/nested.txt"), []byte("n"))

	type entry struct {
		path  string
		isDir bool
	}
	var got []entry
	require.NoError(t, b.Enumerate(root, func(path string, isDir bool) error {
		got = append(got, entry{path, isDir})
		return nil
	}))

	assert.Equal(t, []entry{
		{pathutil.Append(root, "a.txt"), false},
		{pathutil.Append(root, "b"), true},
		{pathutil.Append(root, "c.txt"), false},
	}, got)

	// A visitor error stops the enumeration and is returned unchanged.
	stop := errors.New(errors.CodeFailure, "stop")
	visited := 0
	err := b.Enumerate(root, func(string, bool) error {
		visited++
		return stop
	})
	assert.Same(t, stop, err)
	assert.Equal(t, 1, visited)

	err = b.Enumerate(pathutil.Append(root, "missing"), func(string, bool) error { return nil })
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testEnumerateInfo(t *testing.T, b core.Backend, root string, _ Config) {
	WriteFile(t, b, pathutil.Append(root, "file.bin"), Pattern(64))
	require.NoError(t, b.DirectoryCreate(pathutil.Append(root, "sub")))

	infos := make(map[string]core.FileInfo)
	require.NoError(t, b.EnumerateInfo(root, func(path string, info core.FileInfo) error {
		infos[path] = info
		return nil
	}))

	require.Len(t, infos, 2)
	file := infos[pathutil.Append(root, "file.bin")]
	assert.True(t, file.IsValid)
	assert.False(t, file.IsDirectory)
	assert.Equal(t, int64(64), file.Size)

	sub := infos[pathutil.Append(root, "sub")]
	assert.True(t, sub.IsDirectory)
	assert.Equal(t, int64(-1), sub.Size)
}
