package core

import (
	"io"
	"time"
)

// FSType represents the underlying type of backend implementation.
type FSType int

const (
	// FSTypeUnknown indicates the backend type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local, disk-backed file system.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory file system.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// FileInfo describes a file system entry. It is produced on demand and
// never cached.
type FileInfo struct {
	CreationTime     time.Time
	AccessTime       time.Time
	ModificationTime time.Time
	Size             int64
	IsDirectory      bool
	IsReadonly       bool
	IsValid          bool

	// IsLink is set for symbolic links reported by EnumerateInfo. A link is
	// never reported as a directory.
	IsLink bool
}

// Visitor is invoked once per enumerated entry. Returning a non-nil error
// stops the traversal.
type Visitor func(path string, isDir bool) error

// InfoVisitor is invoked once per enumerated entry with its metadata.
// Returning a non-nil error stops the traversal.
type InfoVisitor func(path string, info FileInfo) error

// Stream is an exclusively owned, position-tracking handle to one open file.
//
// A Stream is open for reading or for writing, fixed when it is opened.
// Streams are not safe for concurrent use.
type Stream interface {
	// Read fills p from the current position. When the stream ends before p
	// is full it returns the bytes read and an error with
	// errors.CodeEndOfStream. Device failures return errors.CodeReadFault.
	Read(p []byte) (int, error)

	// Write writes all of p at the current position. Device failures return
	// errors.CodeWriteFault with the number of bytes written so far.
	Write(p []byte) (int, error)

	// Flush commits written data to stable storage.
	Flush() error

	// Size returns the stream size in bytes. Read streams report the size
	// captured at open; write streams query the live size.
	Size() (int64, error)

	// Position returns the tracked offset.
	Position() int64

	// SetPosition moves the tracked offset.
	SetPosition(offset int64) error

	// Seek moves the tracked offset relative to io.SeekStart, io.SeekCurrent
	// or io.SeekEnd and returns the new offset.
	io.Seeker

	// Name returns the path the stream was opened with.
	Name() string

	// Close releases the native handle. Only the first call has an effect.
	io.Closer
}

// Backend is the minimal primitive surface of one storage target.
//
// Backends hold no per-call mutable state; concurrent calls on distinct
// paths are safe.
type Backend interface {
	// Type returns the underlying backend type.
	Type() FSType

	// OpenRead opens path for reading. shareWrite permits other writers
	// where the target supports it.
	OpenRead(path string, shareWrite bool) (Stream, error)

	// OpenWrite creates or opens path for writing and takes an exclusive,
	// non-blocking advisory lock. Without append the file is truncated;
	// with append the position starts at end of file. Lock contention
	// returns errors.CodeFailure classified as retryable.
	OpenWrite(path string, append, shareRead bool) (Stream, error)

	// Exists reports whether path is an existing regular file or directory.
	Exists(path string) (bool, error)

	// GetFileInfo returns metadata for path.
	GetFileInfo(path string) (FileInfo, error)

	// FileSize returns the size of a regular file, or -1 for a directory.
	FileSize(path string) (int64, error)

	// IsReadonly reports whether path is write protected.
	IsReadonly(path string) (bool, error)

	// SetReadonly sets or clears write protection on path.
	SetReadonly(path string, readonly bool) error

	// FileDelete removes a single file.
	FileDelete(path string) error

	// FileMove renames source to destination, copying across volumes.
	FileMove(destination, source string) error

	// DirectoryCreate creates a single directory.
	DirectoryCreate(path string) error

	// DirectoryDelete removes a single, empty directory.
	DirectoryDelete(path string) error

	// Enumerate lists the immediate children of path in name order,
	// excluding the self and parent entries.
	Enumerate(path string, visitor Visitor) error

	// EnumerateInfo is Enumerate reporting each child's FileInfo.
	EnumerateInfo(path string, visitor InfoVisitor) error
}
