package backendtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

func testLinks(t *testing.T, newBackend Factory, config Config) {
	if config.Symlink == nil {
		t.Skip("backend does not create symbolic links")
	}

	runSubtests(t, "Links", newBackend, config, []subtest{
		{"EnumerateInfo", testLinkEnumerateInfo},
		{"DeleteDangling", testLinkDeleteDangling},
		{"DeleteKeepsTargets", testLinkDeleteKeepsTargets},
		{"CopySkipsLinks", testLinkCopySkipsLinks},
	})
}

// buildLinkedTree creates a tree next to an outside directory:
//
//	outside/
//	  target.txt
//	tree/
//	  plain.txt
//	  sub/
//	    nested.txt
//	  dangling -> missing
//	  file-link -> ../outside/target.txt
//	  dir-link -> ../outside
//
// Targets are relative so they resolve the same way on every backend.
func buildLinkedTree(t *testing.T, b core.Backend, root string, config Config) (tree, outside string) {
	t.Helper()

	outside = pathutil.Append(root, "outside")
	tree = pathutil.Append(root, "tree")
	require.NoError(t, b.DirectoryCreate(outside))
	require.NoError(t, core.DirectoryTreeCreate(b, pathutil.Append(tree, "sub")))

	WriteFile(t, b, pathutil.Append(outside, "target.txt"), []byte("outside"))
	WriteFile(t, b, pathutil.Append(tree, "plain.txt"), []byte("plain"))
	WriteFile(t, b, pathutil.Append(tree, "sub/nested.txt"), []byte("nested"))

	require.NoError(t, config.Symlink(b, "missing", pathutil.Append(tree, "dangling")))
	require.NoError(t, config.Symlink(b, "../outside/target.txt", pathutil.Append(tree, "file-link")))
	require.NoError(t, config.Symlink(b, "../outside", pathutil.Append(tree, "dir-link")))
	return tree, outside
}

func testLinkEnumerateInfo(t *testing.T, b core.Backend, root string, config Config) {
	tree, _ := buildLinkedTree(t, b, root, config)

	got := make(map[string]core.FileInfo)
	require.NoError(t, b.EnumerateInfo(tree, func(path string, info core.FileInfo) error {
		got[pathutil.Filename(path)] = info
		return nil
	}))

	for _, name := range []string{"dangling", "file-link", "dir-link"} {
		assert.True(t, got[name].IsLink, "%s is a link", name)
		assert.False(t, got[name].IsDirectory, "%s is not reported as a directory", name)
	}
	assert.False(t, got["plain.txt"].IsLink)
	assert.False(t, got["sub"].IsLink)
	assert.True(t, got["sub"].IsDirectory)

	var visited []string
	require.NoError(t, b.Enumerate(tree, func(path string, isDir bool) error {
		if isDir {
			visited = append(visited, pathutil.Filename(path))
		}
		return nil
	}))
	assert.Equal(t, []string{"sub"}, visited, "only real directories are descended into")
}

func testLinkDeleteDangling(t *testing.T, b core.Backend, root string, config Config) {
	tree := pathutil.Append(root, "tree")
	require.NoError(t, b.DirectoryCreate(tree))
	WriteFile(t, b, pathutil.Append(tree, "plain.txt"), []byte("plain"))
	require.NoError(t, config.Symlink(b, "missing", pathutil.Append(tree, "dangling")))

	require.NoError(t, core.DirectoryTreeDelete(b, tree))

	exists, err := b.Exists(tree)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testLinkDeleteKeepsTargets(t *testing.T, b core.Backend, root string, config Config) {
	tree, outside := buildLinkedTree(t, b, root, config)
	target := pathutil.Append(outside, "target.txt")

	protected := false
	if config.Readonly {
		err := b.SetReadonly(target, true)
		if !errors.IsStatus(err, errors.CodeNotImplemented) {
			require.NoError(t, err)
			protected = true
		}
	}

	require.NoError(t, core.DirectoryTreeDelete(b, tree))

	exists, err := b.Exists(tree)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, "outside", string(ReadFile(t, b, target)), "link targets are never deleted")
	if protected {
		readonly, err := b.IsReadonly(target)
		require.NoError(t, err)
		assert.True(t, readonly, "deleting a link must not change its target's mode")
		require.NoError(t, b.SetReadonly(target, false))
	}
}

func testLinkCopySkipsLinks(t *testing.T, b core.Backend, root string, config Config) {
	tree, _ := buildLinkedTree(t, b, root, config)
	backup := pathutil.Append(root, "backup")
	require.NoError(t, b.DirectoryCreate(backup))

	require.NoError(t, core.DirectoryTreeCopy(b, backup, tree, false))

	assert.Equal(t, map[string][]byte{
		"plain.txt":      []byte("plain"),
		"sub":            nil,
		"sub/nested.txt": []byte("nested"),
	}, Snapshot(t, b, backup))
}
