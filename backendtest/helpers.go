package backendtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
)

// WriteFile writes data to path, replacing any previous content.
func WriteFile(t *testing.T, b core.Backend, path string, data []byte) {
	t.Helper()

	s, err := b.OpenWrite(path, false, false)
	require.NoError(t, err, "OpenWrite(%s)", path)
	_, err = s.Write(data)
	require.NoError(t, err, "Write(%s)", path)
	require.NoError(t, s.Close(), "Close(%s)", path)
}

// ReadFile returns the whole content of path.
func ReadFile(t *testing.T, b core.Backend, path string) []byte {
	t.Helper()

	s, err := b.OpenRead(path, false)
	require.NoError(t, err, "OpenRead(%s)", path)
	defer func() { _ = s.Close() }()

	data, err := core.ReadAll(s)
	require.NoError(t, err, "ReadAll(%s)", path)
	return data
}

// Snapshot returns every entry below root keyed by its path relative to
// root. Directories map to nil, files to their content.
func Snapshot(t *testing.T, b core.Backend, root string) map[string][]byte {
	t.Helper()

	prefix := root
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}

	tree := make(map[string][]byte)
	err := core.EnumerateRecursive(b, root, func(path string, isDir bool) error {
		rel := path[len(prefix):]
		if isDir {
			tree[rel] = nil
			return nil
		}
		tree[rel] = ReadFile(t, b, path)
		if tree[rel] == nil {
			tree[rel] = []byte{}
		}
		return nil
	})
	require.NoError(t, err, "EnumerateRecursive(%s)", root)
	return tree
}

// Pattern returns n bytes of a repeating, position-dependent pattern.
func Pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + i/251)
	}
	return data
}
