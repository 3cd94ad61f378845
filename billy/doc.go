// Package billy provides a go-billy-backed implementation of core.Backend.
//
// This package wraps go-billy's osfs (local) and memfs (in-memory)
// file systems behind the primitive Backend surface, so the composite
// algorithms in package core and the manager run unmodified on top of them.
//
// Usage:
//
//	// Sandbox rooted at a local directory
//	b := billy.NewLocal("/srv/game")
//
//	// In-memory backend for tests
//	b := billy.NewMemory()
//	err := core.DirectoryTreeCreate(b, "/project/saved")
//
// # Locking
//
// go-billy offers no non-blocking advisory lock, so OpenWrite serializes
// writers through an in-process lock table keyed by path. A second writer on
// the same Backend fails immediately with a retryable errors.CodeFailure.
// The table does not coordinate with other processes.
//
// # Thread Safety
//
// Backend instances are safe for concurrent use by multiple goroutines.
// Streams are not safe for concurrent use.
package billy
