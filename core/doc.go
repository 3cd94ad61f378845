// Package core defines the storage contracts of the virtual file system and
// the composite algorithms built on top of them.
//
// A Backend is the minimal, per-target primitive surface: open a Stream,
// stat, rename, delete, create and remove a single directory, and list one
// directory level through a visitor. Everything recursive or derived lives in
// this package as free functions that only call Backend primitives, so every
// Backend gets them unmodified:
//
//   - EnumerateRecursive, EnumerateRecursiveInfo
//   - FileCopy, MoveByCopy
//   - DirectoryTreeCreate, DirectoryTreeDelete, DirectoryTreeCopy
//   - FindFiles, FindFilesRecursive, FindFilesMatching
//   - CreateTemporaryFilePath, CreateRandomTemporaryFilePath
//
// # Streams
//
// A Stream is an exclusively owned handle to one open file. It is read-only
// or write-only for its whole lifetime. Read and Write transfer the entire
// buffer unless the stream ends or the device fails; a Read that reaches the
// end of the stream returns the bytes it got together with an
// errors.CodeEndOfStream error. Use AsReader to adapt a Stream to io.Reader
// semantics.
//
//	s, err := backend.OpenRead("/data/config.bin", false)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	data, err := io.ReadAll(core.AsReader(s))
//
// Close releases the native handle exactly once; further calls on a closed
// Stream return an error wrapping fs.ErrClosed.
//
// # Visitors
//
// Enumeration reports entries to a Visitor or InfoVisitor. A visitor returning
// a non-nil error stops the traversal and that error is returned unchanged to
// the caller. Composite algorithms are fail-fast and not transactional: a
// failure part way through leaves the tree partially modified.
package core
