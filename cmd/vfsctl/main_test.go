package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: vfsctl")

	code, _, stderr = runCLI(t, "bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Unknown command: bogus")

	code, _, stderr = runCLI(t, "relative", "only-one")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "relative <source> <target>")
}

func TestPathCommands(t *testing.T) {
	code, stdout, _ := runCLI(t, "canonicalize", `C:\games\engine\bin\..\..\game\`)
	assert.Equal(t, 0, code)
	assert.Equal(t, "C:/games/game/\n", stdout)

	code, stdout, _ = runCLI(t, "relative", "/opt/acme/engine/", "/opt/acme/game/content/")
	assert.Equal(t, 0, code)
	assert.Equal(t, "../game/content\n", stdout)
}

func TestJSONErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "-json", "canonicalize", "/../escape")
	assert.Equal(t, 1, code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(stderr), &resp))
	assert.Equal(t, "INVALID_PATH", resp["code"])
	assert.Equal(t, "canonicalize", resp["op"])
}

func TestFileCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "a.mesh"), "mesh a")
	writeFile(t, filepath.Join(src, "models", "b.mesh"), "mesh b")
	writeFile(t, filepath.Join(src, "readme.txt"), "hello")

	code, stdout, _ := runCLI(t, "find", src, ".mesh")
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{
		filepath.ToSlash(filepath.Join(src, "a.mesh")),
		filepath.ToSlash(filepath.Join(src, "models", "b.mesh")),
	}, strings.Fields(stdout))

	code, stdout, _ = runCLI(t, "-json", "-glob", "find", src, "*.txt")
	assert.Equal(t, 0, code)
	var found []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &found))
	assert.Len(t, found, 1)

	dst := filepath.Join(dir, "backup", "copy")
	code, _, stderr := runCLI(t, "copy-tree", src, dst)
	require.Equal(t, 0, code, stderr)

	code, stdout, _ = runCLI(t, "cat", filepath.Join(dst, "models", "b.mesh"))
	assert.Equal(t, 0, code)
	assert.Equal(t, "mesh b", stdout)

	code, _, stderr = runCLI(t, "-metrics", "delete-tree", dst)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, `vfs_operations_total{backend="local",op="directory_delete",status="SUCCESS"}`)
	assert.NoDirExists(t, dst)

	code, _, stderr = runCLI(t, "cat", filepath.Join(dir, "missing"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "NOT_FOUND")
}

func TestLayoutCommands(t *testing.T) {
	base := filepath.ToSlash(t.TempDir())
	t.Setenv("VFS_COMPANY", "Acme")
	t.Setenv("VFS_PRODUCT", "Rocket")
	t.Setenv("VFS_BASE_DIR", base+"/engine/bin/linux")
	t.Setenv("VFS_USER_SETTINGS_DIR", base+"/home")
	t.Setenv("VFS_COMMON_DATA_DIR", base+"/common")
	t.Setenv("VFS_LAYOUT_FILE", "")

	code, stdout, stderr := runCLI(t, "-json", "layout")
	require.Equal(t, 0, code, stderr)

	var layout map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &layout))
	assert.Equal(t, base+"/", layout["root"])
	assert.Equal(t, base+"/game/logs/", layout["project.logs"])
	assert.Equal(t, base+"/home/Acme/Rocket/", layout["user_settings"])

	code, stdout, stderr = runCLI(t, "layout")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, base+"/engine/saved/")

	code, _, stderr = runCLI(t, "ensure")
	require.Equal(t, 0, code, stderr)
	assert.DirExists(t, filepath.FromSlash(base+"/game/crashdump"))
	assert.DirExists(t, filepath.FromSlash(base+"/home/Acme/Rocket"))
}

func TestLayoutRequiresProduct(t *testing.T) {
	t.Setenv("VFS_COMPANY", "Acme")
	t.Setenv("VFS_PRODUCT", "")
	t.Setenv("VFS_BASE_DIR", "/opt/acme/engine/bin/linux")
	t.Setenv("VFS_USER_SETTINGS_DIR", "/home/dev/.config")
	t.Setenv("VFS_COMMON_DATA_DIR", "/var/lib")
	t.Setenv("VFS_LAYOUT_FILE", "")

	code, _, stderr := runCLI(t, "layout")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "product is required")
}
