package backendtest

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

func testComposites(t *testing.T, newBackend Factory, config Config) {
	runSubtests(t, "Composites", newBackend, config, []subtest{
		{"EnumerateRecursive", testEnumerateRecursive},
		{"DirectoryTreeCreate", testDirectoryTreeCreate},
		{"DirectoryTreeCopy", testDirectoryTreeCopy},
		{"DirectoryTreeDelete", testDirectoryTreeDelete},
		{"FileCopy", testFileCopy},
		{"FindFiles", testFindFiles},
		{"FindFilesMatching", testFindFilesMatching},
		{"TemporaryFilePath", testTemporaryFilePath},
	})
}

// buildTree creates a small asset tree below root:
//
//	assets/
//	  a.mesh
//	  b.txt
//	  models/
//	    c.mesh
//	    d.MESH
//	  textures/
//	    e.png
func buildTree(t *testing.T, b core.Backend, root string) string {
	t.Helper()

	assets := pathutil.Append(root, "assets")
	require.NoError(t, core.DirectoryTreeCreate(b, pathutil.Append(assets, "models")))
	require.NoError(t, core.DirectoryTreeCreate(b, pathutil.Append(assets, "textures")))

	WriteFile(t, b, pathutil.Append(assets, "a.mesh"), []byte("mesh a"))
	WriteFile(t, b, pathutil.Append(assets, "b.txt"), []byte("text b"))
	WriteFile(t, b, pathutil.Append(assets, "models/c.mesh"), []byte("mesh c"))
	WriteFile(t, b, pathutil.Append(assets, "models/d.MESH"), []byte("mesh d"))
	WriteFile(t, b, pathutil.Append(assets, "textures/e.png"), Pattern(2048))
	return assets
}

func testEnumerateRecursive(t *testing.T, b core.Backend, root string, _ Config) {
	assets := buildTree(t, b, root)

	var got []string
	require.NoError(t, core.EnumerateRecursive(b, assets, func(path string, _ bool) error {
		got = append(got, strings.TrimPrefix(path, assets+"/"))
		return nil
	}))

	// Pre-order: each directory precedes its children.
	assert.Equal(t, []string{
		"a.mesh",
		"b.txt",
		"models",
		"models/c.mesh",
		"models/d.MESH",
		"textures",
		"textures/e.png",
	}, got)

	var sizes []int64
	require.NoError(t, core.EnumerateRecursiveInfo(b, pathutil.Append(assets, "textures"), func(_ string, info core.FileInfo) error {
		sizes = append(sizes, info.Size)
		return nil
	}))
	assert.Equal(t, []int64{2048}, sizes)

	// A visitor failure aborts the walk before the failing directory is
	// entered.
	stop := errors.New(errors.CodeFailure, "stop")
	var visited []string
	err := core.EnumerateRecursive(b, assets, func(path string, isDir bool) error {
		visited = append(visited, path)
		if isDir {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Len(t, visited, 3)
}

func testDirectoryTreeCreate(t *testing.T, b core.Backend, root string, _ Config) {
	deep := pathutil.Append(root, "one/two/three")
	require.NoError(t, core.DirectoryTreeCreate(b, deep))

	for _, p := range []string{"one", "one/two", "one/two/three"} {
		info, err := b.GetFileInfo(pathutil.Append(root, p))
		require.NoError(t, err)
		assert.True(t, info.IsDirectory, p)
	}

	// Existing prefixes and a trailing separator are tolerated.
	require.NoError(t, core.DirectoryTreeCreate(b, deep+"/"))
	require.NoError(t, core.DirectoryTreeCreate(b, pathutil.Append(root, "one/other")))

	err := core.DirectoryTreeCreate(b, "")
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidPath), "got %v", err)

	// A file in the way cannot become a directory.
	WriteFile(t, b, pathutil.Append(root, "blocker"), []byte("x"))
	err = core.DirectoryTreeCreate(b, pathutil.Append(root, "blocker/child"))
	assert.Error(t, err)
}

func testDirectoryTreeCopy(t *testing.T, b core.Backend, root string, _ Config) {
	assets := buildTree(t, b, root)
	backup := pathutil.Append(root, "backup")
	require.NoError(t, b.DirectoryCreate(backup))

	require.NoError(t, core.DirectoryTreeCopy(b, backup, assets, false))
	assert.Equal(t, Snapshot(t, b, assets), Snapshot(t, b, backup))

	// Overwrite replaces files that already exist in the destination.
	WriteFile(t, b, pathutil.Append(backup, "a.mesh"), []byte("stale content that is longer"))
	require.NoError(t, core.DirectoryTreeCopy(b, backup, assets, true))
	assert.Equal(t, Snapshot(t, b, assets), Snapshot(t, b, backup))

	err := core.DirectoryTreeCopy(b, pathutil.Append(root, "missing"), assets, false)
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	err = core.DirectoryTreeCopy(b, backup, pathutil.Append(root, "missing"), false)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testDirectoryTreeDelete(t *testing.T, b core.Backend, root string, config Config) {
	assets := buildTree(t, b, root)

	if config.Readonly {
		err := b.SetReadonly(pathutil.Append(assets, "models/c.mesh"), true)
		if !errors.IsStatus(err, errors.CodeNotImplemented) {
			require.NoError(t, err)
		}
	}

	require.NoError(t, core.DirectoryTreeDelete(b, assets))

	exists, err := b.Exists(assets)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = b.Exists(root)
	require.NoError(t, err)
	assert.True(t, exists, "parent of the deleted tree survives")

	err = core.DirectoryTreeDelete(b, assets)
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testFileCopy(t *testing.T, b core.Backend, root string, _ Config) {
	sizes := []int{0, 1, core.CopyBufferSize - 1, core.CopyBufferSize, core.CopyBufferSize + 1, 3*core.CopyBufferSize + 17}

	for _, size := range sizes {
		src := pathutil.Append(root, "src.bin")
		dst := pathutil.Append(root, "dst.bin")
		data := Pattern(size)

		WriteFile(t, b, src, data)
		WriteFile(t, b, dst, []byte("previous destination content"))

		require.NoError(t, core.FileCopy(b, dst, src), "size %d", size)
		got := ReadFile(t, b, dst)
		assert.Len(t, got, size)
		assert.True(t, slices.Equal(data, got), "size %d content differs", size)
	}

	err := core.FileCopy(b, pathutil.Append(root, "dst.bin"), pathutil.Append(root, "missing"))
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	// MoveByCopy leaves only the destination.
	src := pathutil.Append(root, "move-src")
	dst := pathutil.Append(root, "move-dst")
	WriteFile(t, b, src, []byte("payload"))
	require.NoError(t, core.MoveByCopy(b, dst, src))

	exists, err := b.Exists(src)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "payload", string(ReadFile(t, b, dst)))
}

func testFindFiles(t *testing.T, b core.Backend, root string, _ Config) {
	assets := buildTree(t, b, root)

	found, err := core.FindFiles(b, assets, ".mesh")
	require.NoError(t, err)
	assert.Equal(t, []string{pathutil.Append(assets, "a.mesh")}, found)

	found, err = core.FindFilesRecursive(b, assets, "mesh")
	require.NoError(t, err)
	assert.Equal(t, []string{
		pathutil.Append(assets, "a.mesh"),
		pathutil.Append(assets, "models/c.mesh"),
	}, found, "matching is case sensitive")

	found, err = core.FindFilesRecursive(b, assets, "")
	require.NoError(t, err)
	assert.Len(t, found, 5, "empty extension matches every file")

	found, err = core.FindFiles(b, pathutil.Append(assets, "textures"), ".mesh")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = core.FindFiles(b, pathutil.Append(root, "missing"), ".mesh")
	assert.True(t, errors.IsNotFound(err), "got %v", err)
}

func testFindFilesMatching(t *testing.T, b core.Backend, root string, _ Config) {
	assets := buildTree(t, b, root)

	found, err := core.FindFilesMatching(b, assets, "**/*.mesh")
	require.NoError(t, err)
	assert.Equal(t, []string{
		pathutil.Append(assets, "a.mesh"),
		pathutil.Append(assets, "models/c.mesh"),
	}, found)

	found, err = core.FindFilesMatching(b, assets, "{models,textures}/*.{MESH,png}")
	require.NoError(t, err)
	assert.Equal(t, []string{
		pathutil.Append(assets, "models/d.MESH"),
		pathutil.Append(assets, "textures/e.png"),
	}, found)

	_, err = core.FindFilesMatching(b, assets, "[unclosed")
	assert.True(t, errors.IsStatus(err, errors.CodeInvalidInput), "got %v", err)
}

func testTemporaryFilePath(t *testing.T, b core.Backend, root string, _ Config) {
	p, err := core.CreateTemporaryFilePath(b, root, "tmp-", ".bin")
	require.NoError(t, err)

	name := pathutil.Filename(p)
	assert.True(t, strings.HasPrefix(name, "tmp-"))
	assert.True(t, strings.HasSuffix(name, ".bin"))
	assert.Len(t, name, len("tmp-")+32+len(".bin"))

	exists, err := b.Exists(p)
	require.NoError(t, err)
	assert.False(t, exists, "only the path is reserved")

	// A taken name is skipped.
	r := rand.New(rand.NewPCG(1, 2))
	taken, err := core.CreateRandomTemporaryFilePath(b, r, root, "", ".txt")
	require.NoError(t, err)
	WriteFile(t, b, taken, []byte("x"))

	r = rand.New(rand.NewPCG(1, 2))
	next, err := core.CreateRandomTemporaryFilePath(b, r, root, "", ".txt")
	require.NoError(t, err)
	assert.NotEqual(t, taken, next)
	assert.Len(t, pathutil.Filename(next), 16+len(".txt"))
}
