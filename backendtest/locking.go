package backendtest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

func testLocking(t *testing.T, newBackend Factory, config Config) {
	if !config.Locking {
		t.Skip("backend does not lock write streams")
	}

	runSubtests(t, "Locking", newBackend, config, []subtest{
		{"ExclusiveWriter", testExclusiveWriter},
		{"ReleasedOnClose", testLockReleasedOnClose},
		{"ConcurrentOpen", testConcurrentOpen},
		{"DistinctPaths", testDistinctPaths},
	})
}

func testExclusiveWriter(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "locked.txt")

	first, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	defer func() { _ = first.Close() }()

	_, err = b.OpenWrite(p, true, false)
	require.Error(t, err)
	assert.True(t, errors.IsStatus(err, errors.CodeFailure), "got %v", err)
	assert.True(t, errors.IsRetryable(err), "lock contention is retryable")
}

func testLockReleasedOnClose(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "relock.txt")

	first, err := b.OpenWrite(p, false, false)
	require.NoError(t, err)
	_, err = first.Write([]byte("one"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := b.OpenWrite(p, true, false)
	require.NoError(t, err)
	_, err = second.Write([]byte("two"))
	require.NoError(t, err)
	require.NoError(t, second.Close())

	assert.Equal(t, "onetwo", string(ReadFile(t, b, p)))
}

func testConcurrentOpen(t *testing.T, b core.Backend, root string, _ Config) {
	p := pathutil.Append(root, "race.txt")
	WriteFile(t, b, p, nil)

	const writers = 8

	var (
		mu      sync.Mutex
		winners []core.Stream
		start   = make(chan struct{})
	)

	var g errgroup.Group
	for range writers {
		g.Go(func() error {
			<-start
			s, err := b.OpenWrite(p, true, false)
			if err != nil {
				if errors.IsRetryable(err) {
					return nil
				}
				return err
			}
			mu.Lock()
			winners = append(winners, s)
			mu.Unlock()
			return nil
		})
	}
	close(start)
	require.NoError(t, g.Wait())

	assert.Len(t, winners, 1, "exactly one writer holds the lock")
	for _, s := range winners {
		require.NoError(t, s.Close())
	}
}

func testDistinctPaths(t *testing.T, b core.Backend, root string, _ Config) {
	a, err := b.OpenWrite(pathutil.Append(root, "a.txt"), false, false)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	c, err := b.OpenWrite(pathutil.Append(root, "c.txt"), false, false)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	// Readers are not blocked by a writer.
	r, err := b.OpenRead(pathutil.Append(root, "a.txt"), true)
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
