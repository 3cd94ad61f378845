package manager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jmgilman/go/vfs/backendtest"
	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/config"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/native"
)

func testConfig(base string) *config.Config {
	cfg := config.Default()
	cfg.Company = "Acme"
	cfg.Product = "Rocket"
	cfg.BaseDir = base
	cfg.UserSettingsDir = "/home/dev/.config"
	cfg.CommonDataDir = "/var/lib"
	return cfg
}

func TestNewLayout(t *testing.T) {
	layout, err := NewLayout(testConfig("/opt/acme/engine/bin/linux"))
	require.NoError(t, err)

	assert.Equal(t, "/opt/acme/", layout.Root)
	assert.Equal(t, "/opt/acme/engine/bin/linux/", layout.Launch)

	assert.Equal(t, EngineDirs{
		Root:         "/opt/acme/engine/",
		Content:      "/opt/acme/engine/content/",
		Config:       "/opt/acme/engine/config/",
		Source:       "/opt/acme/engine/source/",
		Intermediate: "/opt/acme/engine/intermediate/",
		Saved:        "/opt/acme/engine/saved/",
		User:         "/opt/acme/engine/",
	}, layout.Engine)

	assert.Equal(t, ProjectDirs{
		Root:         "/opt/acme/game/",
		Content:      "/opt/acme/game/content/",
		Config:       "/opt/acme/game/config/",
		Source:       "/opt/acme/game/source/",
		Intermediate: "/opt/acme/game/intermediate/",
		Saved:        "/opt/acme/game/saved/",
		Cache:        "/opt/acme/game/cache/",
		Logs:         "/opt/acme/game/logs/",
		Crashdump:    "/opt/acme/game/crashdump/",
		Screenshots:  "/opt/acme/game/screenshots/",
		BugReport:    "/opt/acme/game/bugreport/",
		Profiling:    "/opt/acme/game/profiling/",
		Developer:    "/opt/acme/game/developer/",
		User:         "/opt/acme/game/",
	}, layout.Project)

	assert.Equal(t, "/home/dev/.config/Acme/Rocket/", layout.UserSettings)
	assert.Equal(t, "/var/lib/Acme/Rocket/", layout.CommonData)
}

func TestNewLayout_WindowsBase(t *testing.T) {
	cfg := testConfig(`C:\Games\Rocket\engine\bin\win64\`)
	cfg.UserSettingsDir = `C:\Users\dev\AppData\Roaming`
	cfg.ProjectDir = "sandbox"

	layout, err := NewLayout(cfg)
	require.NoError(t, err)

	assert.Equal(t, "C:/Games/Rocket/", layout.Root)
	assert.Equal(t, "C:/Games/Rocket/sandbox/logs/", layout.Project.Logs)
	assert.Equal(t, "C:/Users/dev/AppData/Roaming/Acme/Rocket/", layout.UserSettings)
}

func TestNewLayout_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		code   errors.ErrorCode
	}{
		{"missing company", func(c *config.Config) { c.Company = "" }, errors.CodeInvalidInput},
		{"missing base", func(c *config.Config) { c.BaseDir = "" }, errors.CodeInvalidPath},
		{"missing user settings", func(c *config.Config) { c.UserSettingsDir = "" }, errors.CodeInvalidPath},
		{"ascends past root", func(c *config.Config) { c.BaseDir = "/"; c.RootAscent = "../../" }, errors.CodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("/opt/acme/engine/bin/linux")
			tt.mutate(cfg)

			_, err := NewLayout(cfg)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestWritableDirectories(t *testing.T) {
	layout, err := NewLayout(testConfig("/opt/acme/engine/bin/linux"))
	require.NoError(t, err)

	dirs := layout.WritableDirectories()
	assert.Len(t, dirs, 10)
	assert.Contains(t, dirs, layout.Project.Crashdump)
	assert.Contains(t, dirs, layout.UserSettings)
	assert.NotContains(t, dirs, layout.Project.Content, "content is read-only at runtime")
}

func newMemoryManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	layout, err := NewLayout(testConfig("/opt/acme/engine/bin/linux"))
	require.NoError(t, err)

	b := billy.NewMemory()
	require.NoError(t, core.DirectoryTreeCreate(b, "/data"))
	return New(b, layout, opts...)
}

func TestTextRoundTrip(t *testing.T) {
	m := newMemoryManager(t)

	require.NoError(t, m.WriteText("/data/notes.txt", "first line\n"))
	text, err := m.ReadText("/data/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "first line\n", text)

	require.NoError(t, m.WriteText("/data/notes.txt", "replaced"))
	text, err = m.ReadText("/data/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "replaced", text)
}

func TestBinaryRoundTrip(t *testing.T) {
	m := newMemoryManager(t)
	data := backendtest.Pattern(70_000)

	require.NoError(t, m.WriteBinary("/data/blob.bin", data))
	got, err := m.ReadBinary("/data/blob.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, m.AppendBinary("/data/blob.bin", []byte{1, 2, 3}))
	got, err = m.ReadBinary("/data/blob.bin")
	require.NoError(t, err)
	assert.Len(t, got, len(data)+3)
	assert.Equal(t, []byte{1, 2, 3}, got[len(data):])

	require.NoError(t, m.AppendBinary("/data/new.bin", []byte("created")))
	got, err = m.ReadBinary("/data/new.bin")
	require.NoError(t, err)
	assert.Equal(t, "created", string(got))
}

func TestReadBinary_EmptyFile(t *testing.T) {
	m := newMemoryManager(t)
	require.NoError(t, m.WriteBinary("/data/empty", nil))

	got, err := m.ReadBinary("/data/empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadBinary_Errors(t *testing.T) {
	m := newMemoryManager(t, WithMaxFileSize(16))
	require.NoError(t, m.WriteBinary("/data/big", backendtest.Pattern(17)))

	_, err := m.ReadBinary("/data/big")
	assert.Equal(t, errors.CodeNotEnoughMemory, errors.GetCode(err))

	_, err = m.ReadBinary("/data/missing")
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err))
	assert.Equal(t, "read_binary", err.(errors.StorageError).Op())

	_, err = m.ReadText("/data")
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err), "directories cannot be opened")
}

func TestWrite_OpenFailure(t *testing.T) {
	m := newMemoryManager(t)

	err := m.WriteText("/no/such/dir/file.txt", "x")
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err))
	assert.Equal(t, "write_text", err.(errors.StorageError).Op())

	s, err := m.OpenWrite("/data/locked", false, false)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	err = m.WriteBinary("/data/locked", []byte("x"))
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err))
	assert.True(t, errors.IsRetryable(err), "lock contention stays retryable")
}

func TestArchives(t *testing.T) {
	m := newMemoryManager(t)

	w, err := m.CreateWriter("/data/save.bin", false, false)
	require.NoError(t, err)
	w.WriteUint32(7)
	w.WriteString("checkpoint")
	require.NoError(t, w.Close())

	r, err := m.CreateReader("/data/save.bin", false)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, uint32(7), r.ReadUint32())
	assert.Equal(t, "checkpoint", r.ReadString())
	require.NoError(t, r.Err())

	_, err = m.CreateReader("/data/missing.bin", false)
	assert.True(t, errors.IsNotFound(err))
}

func TestAccessors(t *testing.T) {
	m := newMemoryManager(t)
	assert.Equal(t, "/opt/acme/", m.Layout().Root)
	assert.Equal(t, core.FSTypeMemory, m.Backend().Type())

	s, err := m.OpenRead("/data", false)
	assert.Nil(t, s)
	assert.Equal(t, errors.CodeInvalidFile, errors.GetCode(err))
}

func TestEnsureDirectories(t *testing.T) {
	base := filepath.ToSlash(t.TempDir())
	cfg := testConfig(base + "/engine/bin/linux")
	cfg.UserSettingsDir = base + "/home"

	layout, err := NewLayout(cfg)
	require.NoError(t, err)

	observed, logs := observer.New(zap.DebugLevel)
	b := native.New()
	m := New(b, layout, WithLogger(zap.New(observed)))

	require.NoError(t, m.EnsureDirectories(context.Background()))
	for _, dir := range layout.WritableDirectories() {
		info, err := b.GetFileInfo(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDirectory, dir)
	}
	assert.Equal(t, 10, logs.FilterMessage("directory ensured").Len())
	assert.Equal(t, 1, logs.FilterMessage("layout resolved").Len())

	// Running again is a no-op.
	require.NoError(t, m.EnsureDirectories(context.Background()))
}

func TestEnsureDirectories_Canceled(t *testing.T) {
	m := newMemoryManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.EnsureDirectories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
