package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/backendtest"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

func TestBackend(t *testing.T) {
	config := backendtest.DefaultConfig()
	config.Locking = advisoryLocking
	config.Symlink = func(_ core.Backend, target, link string) error {
		return os.Symlink(target, link)
	}
	backendtest.Run(t, func(t *testing.T) (core.Backend, string) {
		return New(), t.TempDir()
	}, config)
}

// TestBackendSmallChunks runs the stream groups with a chunk size that
// forces every transfer through many system calls.
func TestBackendSmallChunks(t *testing.T) {
	backendtest.Run(t, func(t *testing.T) (core.Backend, string) {
		return New(WithChunkSize(7)), t.TempDir()
	}, backendtest.Config{
		SkipTests: []string{"Primitives", "Locking", "Composites/FileCopy"},
	})
}

func TestNew(t *testing.T) {
	b := New()
	assert.Equal(t, core.FSTypeLocal, b.Type())
	assert.Equal(t, DefaultChunkSize, b.chunkSize)
	assert.NotNil(t, b.logger)

	assert.Equal(t, 512, New(WithChunkSize(512)).chunkSize)
	assert.Equal(t, DefaultChunkSize, New(WithChunkSize(0)).chunkSize)
	assert.Equal(t, DefaultChunkSize, New(WithChunkSize(-3)).chunkSize)
}

func TestRoundTripAroundChunkBoundaries(t *testing.T) {
	const chunk = 64
	b := New(WithChunkSize(chunk))
	dir := t.TempDir()

	for _, size := range []int{0, 1, chunk - 1, chunk, chunk + 1, 10 * chunk} {
		p := filepath.Join(dir, "data.bin")
		data := backendtest.Pattern(size)

		backendtest.WriteFile(t, b, p, data)

		onDisk, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, data, onDisk, "size %d", size)

		got := backendtest.ReadFile(t, b, p)
		assert.Len(t, got, size)
		assert.Equal(t, string(data), string(got), "size %d", size)
	}
}

func TestFileInfoTimes(t *testing.T) {
	b := New()
	p := filepath.Join(t.TempDir(), "stamped.txt")
	backendtest.WriteFile(t, b, p, []byte("x"))

	info, err := b.GetFileInfo(p)
	require.NoError(t, err)
	assert.False(t, info.AccessTime.IsZero())
	assert.False(t, info.CreationTime.IsZero())
	assert.False(t, info.ModificationTime.IsZero())
}

func TestEnumerateInfoDanglingLink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	var got []core.FileInfo
	require.NoError(t, New().EnumerateInfo(dir, func(_ string, info core.FileInfo) error {
		got = append(got, info)
		return nil
	}))

	require.Len(t, got, 1)
	assert.False(t, got[0].IsValid)
	assert.False(t, got[0].IsDirectory)
}

func TestExistsFollowsLinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	exists, err := New().Exists(link)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirectoryTreeDeleteKeepsLinkTargetMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "protected.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o444))

	tree := filepath.Join(dir, "tree")
	require.NoError(t, os.Mkdir(tree, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(tree, "link")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(tree, "dangling")))

	require.NoError(t, core.DirectoryTreeDelete(New(), tree))

	_, err := os.Lstat(tree)
	assert.True(t, os.IsNotExist(err), "tree is removed")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
}

func TestSetReadonlyLeavesLinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o444))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))
	dangling := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), dangling))

	b := New()
	require.NoError(t, b.SetReadonly(link, false))
	require.NoError(t, b.SetReadonly(dangling, false))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
}

func TestReadStopsAtSizeCapturedAtOpen(t *testing.T) {
	b := New()
	p := filepath.Join(t.TempDir(), "growing.log")
	require.NoError(t, os.WriteFile(p, []byte("first"), 0o644))

	s, err := b.OpenRead(p, true)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(" appended later")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	buf := make([]byte, 64)
	n, err := s.Read(buf)
	assert.True(t, errors.IsEndOfStream(err), "got %v", err)
	assert.Equal(t, "first", string(buf[:n]))

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, size, s.Position())
}
